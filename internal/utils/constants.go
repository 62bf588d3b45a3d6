package utils

// Well-known file and directory names consulted or excluded by the tool.
const (
	// GitIgnoreFileName is the name of the Git ignore file read at the project root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PythonCacheDirectoryName is the bytecode cache directory excluded from traversal.
	PythonCacheDirectoryName = "__pycache__"
	// ConfigFileName is the name of the local application configuration file.
	ConfigFileName = ".projmd.yaml"
	// GlobalConfigDirectoryName is the per-user configuration directory under the home directory.
	GlobalConfigDirectoryName = ".projmd"
)
