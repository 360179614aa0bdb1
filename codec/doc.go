// Package codec reads and writes plain trees as YAML or JSON documents.
//
// The record package never parses bytes; codec sits in front of it and
// hands over a plain.Map whose nested containers are already plain nodes.
package codec
