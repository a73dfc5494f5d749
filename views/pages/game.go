package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tenpin/internal/viewmodel"
	"tenpin/views/components"
	"tenpin/views/markup"
)

// GamePage renders the lane page. Fragments are swapped in place from the
// SSE stream.
func GamePage(data viewmodel.GamePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div hx-ext="sse"`)
		m.Attr("sse-connect", "/game/"+data.GameID+"/stream")
		m.Raw(`><div class="level"><div class="level-left"><h1 class="title">`)
		m.Text(data.Title)
		m.Raw(`</h1></div><div class="level-right"><form method="POST"`)
		m.Attr("action", "/game/"+data.GameID+"/reset")
		m.Raw(`><button class="button is-warning is-light" type="submit">Reset game</button></form></div></div>`)
		if data.InviteURL != "" {
			m.Raw(`<p class="help">Lane link: <a`)
			m.Attr("href", data.InviteURL)
			m.Raw(`>`)
			m.Text(data.InviteURL)
			m.Raw(`</a></p>`)
		}
		m.Raw(`<div sse-swap="hud" hx-swap="outerHTML" hx-target="#lane">`)
		m.Component(ctx, components.LaneFragment(data.Lane))
		m.Raw(`</div><div class="columns"><div class="column is-three-quarters" sse-swap="scores" hx-swap="outerHTML" hx-target="#scores">`)
		m.Component(ctx, components.ScoresFragment(data.Scores))
		m.Raw(`</div><div class="column" sse-swap="players" hx-swap="outerHTML" hx-target="#players">`)
		m.Component(ctx, components.PlayersFragment(data.Players))
		m.Raw(`</div></div></div>`)
		return m.Err()
	})
	return layout(data.Title, body)
}
