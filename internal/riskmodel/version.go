package riskmodel

import "golang.org/x/mod/semver"

// ModelVersion identifies the dataset recipe and fitting procedure. Bump the
// major version whenever a change alters fitted coefficients.
const ModelVersion = "v1.0.0"

// Compatible reports whether an assessment scored by version v is
// comparable with the current model.
func Compatible(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major(ModelVersion)
}
