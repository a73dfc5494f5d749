package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"tenpin/internal/viewmodel"
	"tenpin/views/markup"
)

// LaneFragment renders the HUD above the lane.
func LaneFragment(data viewmodel.LaneFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div id="lane" class="box has-text-centered"`)
		m.Attr("data-signal", strconv.FormatUint(data.Signal, 10))
		m.Attr("data-rack", data.Rack)
		m.Attr("data-legal-max", strconv.Itoa(data.LegalMaxPins))
		if data.Rolling {
			m.Attr("data-rolling", "true")
		}
		m.Raw(`>`)
		switch {
		case data.NoPlayers:
			m.Raw(`<p class="title is-5">Add a bowler to start.</p>`)
		case data.Complete:
			m.Raw(`<p class="title is-4">Game over</p>`)
			if data.WinnerName != "" {
				m.Raw(`<p class="subtitle is-5">Winner: <strong>`)
				m.Text(data.WinnerName)
				m.Raw(`</strong></p>`)
			}
			m.Raw(`<form method="POST"`)
			m.Attr("action", "/game/"+data.GameID+"/reset")
			m.Raw(`><button class="button is-primary" type="submit">New game</button></form>`)
		default:
			m.Raw(`<p class="title is-4">`)
			m.Text(data.ActiveName)
			m.Raw(`</p><p class="subtitle is-6">Frame `)
			m.Int(data.FrameNumber)
			m.Raw(` &middot; Ball `)
			m.Int(data.BallNumber)
			m.Raw(` &middot; `)
			m.Int(data.LegalMaxPins)
			m.Raw(` pins up</p>`)
			if data.Rolling {
				m.Raw(`<p class="tag is-warning">Rolling&hellip;</p>`)
			} else {
				m.Raw(`<p class="tag is-success">Swipe to bowl</p>`)
			}
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}
