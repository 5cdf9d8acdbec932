// Package cli implements the ctop command-line interface.
//
// Each cobra command parses its flags and then delegates to a plain
// function (topCommand, contextsCommand) that takes its collaborators as
// arguments, so the work can be tested without a process or a terminal.
//
// # Command Structure
//
// The root command is "ctop" with subcommands:
//
//	ctop top <context>  - Live route statistics for one context
//	ctop contexts       - List running contexts
//	ctop version        - Print version information
//	ctop completion     - Generate shell completion scripts
//
// # Startup
//
// The top command runs these steps before anything is drawn:
//
//  1. Read the file/env config (--config, .ctop.yaml, CTOP_*)
//  2. Apply --updates, --sort, --reverse and --no-color on top of it and
//     validate the merged result
//  3. Build the routing runtime from the demo topology (--demo) and start
//     its workload
//  4. Resolve the context by name
//
// Any failure here is printed once on stderr and exits with status 1. After
// that the refresh loop owns stdout until SIGINT or SIGTERM, which exits 0.
//
// # Flag Handling
//
// Global flags (--config, --demo) are defined on the root command. A top
// flag only overrides the config when it was given on the command line.
package cli
