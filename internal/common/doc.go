// Package common holds small generic helpers shared by the internal packages.
package common
