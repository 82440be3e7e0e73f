// docingest is a command-line front end for the docforge ingest pipeline.
// It converts txt, md, html, and json files into the normalized document
// representation, optionally running cleanup and reporting what was
// repaired.
package main

func main() {
	Execute()
}
