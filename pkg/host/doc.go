// Package host bridges a constructed command tree onto argument-parsing front
// ends. Two bridges are provided, urfave/cli and cobra, both driven purely by
// the tree's groups, leaves, and descriptors; neither inspects the source API
// description. Hosts collect raw string values and hand them to the invocation
// binder, which owns validation, type conversion, body assembly, and dispatch.
package host
