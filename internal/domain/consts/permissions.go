package consts

// Permissions for files and directories media-dupes creates.
const (
	// Download directories and logs - world readable
	PermsGenericDir = 0o755
	PermsLogFile    = 0o644

	// Private program state - owner only
	PermsHomeProgDir = 0o700
	PermsConfigFile  = 0o600
	PermsDBFile      = 0o600
)
