/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package marker

import "fmt"

// RoundTripError reports a rule whose inverse does not restore its input.
type RoundTripError struct {
	Rule    string
	Input   string
	Forward string
	Output  string
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("rule %s does not round-trip: %q -> %q -> %q", e.Rule, e.Input, e.Forward, e.Output)
}

// RoundTrip applies rule forward then backward to sample.
// It returns the intermediate text, and a *RoundTripError when the result
// differs from sample.
func RoundTrip(rule Rule, sample string) (string, error) {
	forward := rule.Snippet.Replace(sample)
	output := rule.Variable.Replace(forward)
	if output != sample {
		return forward, &RoundTripError{
			Rule:    rule.Name,
			Input:   sample,
			Forward: forward,
			Output:  output,
		}
	}
	return forward, nil
}
