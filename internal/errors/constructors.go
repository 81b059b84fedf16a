package errors

// Convenience constructors for common error patterns

// Config errors

func ConfigReadFailed(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "failed to read configuration file").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *CompilerError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func MissingSourceFile(page, file string) *CompilerError {
	return New(CategorySource, SeverityFatal, "page directory is missing a required source file").
		WithContext("page", page).
		WithContext("file", file)
}

func MalformedMetadata(page string, cause error) *CompilerError {
	return Wrap(cause, CategoryMetadata, SeverityFatal, "metadata is not a valid JSON object").
		WithContext("page", page)
}

// Compile pipeline errors

func DiscoveryFailed(root string, cause error) *CompilerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "content discovery failed").
		WithContext("root", root)
}

func ReadFailed(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to read source file").
		WithContext("path", path)
}

func OutputWriteFailed(path string, cause error) *CompilerError {
	return Wrap(cause, CategoryCompile, SeverityFatal, "failed to write directory index").
		WithContext("path", path)
}

// Watch mode errors

func WatchSetupFailed(cause error) *CompilerError {
	return Wrap(cause, CategoryDaemon, SeverityFatal, "failed to set up content watcher")
}
