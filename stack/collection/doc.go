// Package collection creates arrays and accesses their elements.
package collection
