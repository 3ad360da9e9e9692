// Package emit derives the translator's output documents from a
// resolved model: the signal listing, the connection-source mapping, the
// display description, and the alias table. Each document is an
// order-preserving list encoded as YAML.
package emit
