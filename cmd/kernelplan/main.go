// Command kernelplan loads a synthetic compute module description and a
// configuration from YAML, runs the planner over it, and prints a report
// of the resulting dispositions. It exists for manual/offline inspection
// and golden-file testing (SPEC_FULL.md); it is not part of the in-process
// API a real compiler pipeline embeds (that is the root planner package).
package main

func main() {
	Execute()
}
