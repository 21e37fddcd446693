// Package cmd assembles the concierge binary's command-line interface.
//
// The command set is built at startup from two sources:
//   - the builtins: describe, which renders the generated tree, and init,
//     which writes a starter config file
//   - one command per group and operation of the loaded API description,
//     produced by pkg/host from the tree pkg/command builds
//
// Wiring runs through an fx module: configuration is loaded (concierge.yaml
// or CONCIERGE_CONFIG), the API description is ingested and validated, the
// command tree is built, and the resulting commands are collected into the
// root command. Startup is all-or-nothing: a malformed description or rule
// set fails the process before any command runs. A missing config file is
// not an error; concierge then offers only its builtins.
//
// # Example Usage
//
//	concierge describe                # print the generated command tree
//	concierge users list --limit 5    # dry-run an API operation
//	concierge users create --name Jo  # dry-run with a request body
//
// Invocations render dry-run lines to stderr until a dispatcher is wired
// into the binder; argument problems exit non-zero for that call only.
package cmd
