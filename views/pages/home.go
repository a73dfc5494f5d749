package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tenpin/internal/viewmodel"
	"tenpin/views/markup"
)

// HomePage renders the form that opens a new lane.
func HomePage(data viewmodel.HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<h1 class="title">`)
		m.Text(data.Title)
		m.Raw(`</h1><p class="subtitle">Ten-pin bowling for everyone around one screen.</p>`)
		m.Raw(`<form method="POST" action="/games" class="box">`)
		for i := 1; i <= data.MaxPlayers; i++ {
			m.Raw(`<div class="field"><label class="label">Bowler `)
			m.Int(i)
			m.Raw(`</label><div class="control"><input class="input" name="players" maxlength="20"></div></div>`)
		}
		m.Raw(`<div class="field"><div class="control"><button type="submit" class="button is-primary">Open lane</button></div></div>`)
		m.Raw(`</form>`)
		return m.Err()
	})
	return layout(data.Title, body)
}
