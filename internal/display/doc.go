// Package display turns resolved lines into something a person can act on.
//
// BuildRow splits a line into plain, file and directory segments using the
// matches from the resolver. Rows are then rendered in one of three ways:
//
//	r := display.NewTextRenderer(os.Stdout, display.ColorEnabled("auto", os.Stdout))
//	r.Render(rows) // terminal map, clickable files numbered [n]
//
//	display.RenderHTML(w, "notes.txt", rows) // standalone HTML page with links
//
//	display.WriteMatches(w, display.FormatJSON, records) // one JSON object per match
//
// Warnings for the user (nothing clickable, filter matched nothing) use the
// Warning type and are written to stderr by the CLI.
package display
