package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tenpin/internal/viewmodel"
	"tenpin/views/markup"
)

// PlayersFragment renders the roster with rename and remove forms.
func PlayersFragment(data viewmodel.PlayersFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		base := "/game/" + data.GameID + "/players"
		m.Raw(`<div id="players" class="box"><h2 class="title is-5">Bowlers</h2>`)
		if len(data.Players) == 0 {
			m.Raw(`<p class="has-text-grey">Nobody yet.</p>`)
		}
		for _, p := range data.Players {
			m.Raw(`<div class="field has-addons">`)
			m.Raw(`<form class="control is-expanded" method="POST"`)
			m.Attr("action", base+"/"+p.ID+"/name")
			m.Raw(`><input class="input" name="name" maxlength="20"`)
			if p.Active {
				m.Raw(` style="font-weight:bold"`)
			}
			m.Attr("value", p.Name)
			m.Raw(`></form><form class="control" method="POST"`)
			m.Attr("action", base+"/"+p.ID+"/remove")
			m.Raw(`><button class="button is-danger is-light" type="submit">Remove</button></form></div>`)
		}
		if data.CanAdd {
			m.Raw(`<form class="field has-addons" method="POST"`)
			m.Attr("action", base)
			m.Raw(`><div class="control is-expanded"><input class="input" name="name" maxlength="20" placeholder="Name"></div>`)
			m.Raw(`<div class="control"><button class="button is-link" type="submit">Add</button></div></form>`)
		} else {
			m.Raw(`<p class="help">Lane is full (`)
			m.Int(data.MaxPlayers)
			m.Raw(` bowlers).</p>`)
		}
		m.Raw(`<p class="help">Changing the number of bowlers starts a new game.</p></div>`)
		return m.Err()
	})
}
