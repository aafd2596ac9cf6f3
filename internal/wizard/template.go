package wizard

// configTemplate is the canonical condaprep.toml layout. The patcher uses it
// for section ordering and for key formatting when a key is absent from the
// user's file.
const configTemplate = `# condaprep project configuration.
# Re-run 'condaprep init' to update this file; comments are preserved.

[install]
# Installation prefix for the distribution manager.
dir = "~/miniconda3"
# Optional override for the installer download URL.
# installer_url = ""

[env]
# Name of the environment created from the spec file.
name = "test-environment"
# Declarative environment spec, relative to the project root.
spec_file = "environment.yml"

[reporting]
# Utilities installed into the environment after each update.
tools = ["coverage", "coveralls"]

[warnings]
# Set to false to skip the release-freshness check during up.
# update_check = true
`
