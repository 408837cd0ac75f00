package main

import "github.com/jakecoffman/cp"

// CheckCollision checks if two circles touch or overlap
func CheckCollision(c1 cp.Vector, r1 float64, c2 cp.Vector, r2 float64) bool {
	return c1.Distance(c2) <= r1+r2
}

// SumFields accumulates the pull body feels from every source.
// A source at the same address as body is skipped.
func SumFields(body *Body, sources []Planet) cp.Vector {
	var total cp.Vector
	for i := range sources {
		if &sources[i].Body == body {
			continue
		}
		total = total.Add(body.FieldFrom(sources[i].Body))
	}
	return total
}
