package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/roster"
)

// resolveSlots picks the slot count from the flag, then the config file, and
// finally asks on in. Whatever is chosen is validated later by the bander.
func resolveSlots(flagSet bool, flagValue, configured int, in io.Reader, out io.Writer) (int, error) {
	if flagSet {
		return flagValue, nil
	}
	if configured > 0 {
		return configured, nil
	}
	return promptSlots(in, out)
}

// promptSlots reads one integer answer
func promptSlots(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "Enter the number of altar servers: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, &roster.ResourceError{Resource: "stdin", Op: "read", Err: err}
	}
	answer := strings.TrimSpace(line)
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, &roster.ConfigError{Slot: -1, Reason: fmt.Sprintf("slot count must be a whole number, got %q", answer)}
	}
	return n, nil
}
