package runtime

// Must panics if err is not nil. Only use it for errors that indicate a programming mistake.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
