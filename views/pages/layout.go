package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"tenpin/views/markup"
)

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1, user-scalable=no">`)
		m.Raw(`<title>`)
		m.Text(title)
		m.Raw(`</title>`)
		m.Raw(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css">`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>`)
		m.Raw(`</head><body><section class="section"><div class="container">`)
		m.Component(ctx, body)
		m.Raw(`</div></section></body></html>`)
		return m.Err()
	})
}
