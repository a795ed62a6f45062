// Command rtalgs simulates hard real-time periodic task scheduling
// under Rate Monotonic, EDF, Least Laxity First, and Maximum Urgency
// First.
package main

import "github.com/rtalgs/rtalgs/internal/cli"

func main() {
	cli.Execute()
}
