package levelset

// Version is the module's release version, reported by cmd/levelsetcli's
// version subcommand.
const Version = "0.1.0"
