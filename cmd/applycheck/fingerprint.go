package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dusk-indust/applycheck/internal/textnorm"
)

// runFingerprint prints the normalized form and fingerprint of a text, for
// spot-checking the placement side of the shared contract. Text comes from
// the arguments when present, otherwise from stdin.
func runFingerprint(args []string) error {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	fmt.Printf("algorithm:   v%s\n", textnorm.AlgorithmVersion)
	fmt.Printf("normalized:  %s\n", textnorm.Normalize(text))
	fmt.Printf("fingerprint: %s\n", textnorm.ComputeFingerprint(text))
	return nil
}
