package main

// splitDashDash splits an argument list at the first "--". The separator
// itself is dropped; everything after it is returned untouched, in order,
// for verbatim forwarding to the verification stage.
func splitDashDash(args []string) (head, tail []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}
