package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tenpin/internal/viewmodel"
	"tenpin/views/markup"
)

// ScoresFragment renders the score grid, one row per bowler.
func ScoresFragment(data viewmodel.ScoresFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<div id="scores" class="table-container"><table class="table is-bordered is-narrow is-fullwidth"><thead><tr><th>Bowler</th>`)
		for i := 1; i <= 10; i++ {
			m.Raw(`<th class="has-text-centered">`)
			m.Int(i)
			m.Raw(`</th>`)
		}
		m.Raw(`<th>Total</th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			if row.Active {
				m.Raw(`<tr class="is-selected">`)
			} else {
				m.Raw(`<tr>`)
			}
			m.Raw(`<th>`)
			m.Text(row.Name)
			m.Raw(`</th>`)
			for _, box := range row.Frames {
				m.Raw(`<td class="frame`)
				if box.Current {
					m.Raw(` is-current`)
				}
				m.Raw(`"><div class="marks">`)
				for _, mark := range box.Marks {
					m.Raw(`<span class="mark">`)
					m.Text(mark)
					m.Raw(`</span>`)
				}
				m.Raw(`</div><div class="running">`)
				m.Text(box.Running)
				m.Raw(`</div></td>`)
			}
			m.Raw(`<td class="total"><strong>`)
			m.Int(row.Total)
			m.Raw(`</strong></td></tr>`)
		}
		m.Raw(`</tbody></table>`)
		if data.Complete && data.WinnerName != "" {
			m.Raw(`<p class="notification is-info">Winner: `)
			m.Text(data.WinnerName)
			m.Raw(`</p>`)
		}
		m.Raw(`</div>`)
		return m.Err()
	})
}
