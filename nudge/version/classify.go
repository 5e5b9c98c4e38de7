package version

// Classify reports the magnitude of the upgrade from installed to store. Anything other than a strictly newer store
// version is NoneSeverity.
func Classify(installed, store *Version) Severity {
	if installed == nil || store == nil {
		return NoneSeverity
	}

	if store.Compare(installed) <= 0 {
		return NoneSeverity
	}

	current, candidate := padded(installed, store)
	for idx := range candidate {
		if candidate[idx] != current[idx] {
			return severityAtIndex(idx)
		}
	}

	return NoneSeverity
}

// ClassifyStrings parses both versions and classifies the upgrade between them.
func ClassifyStrings(installed, store string) (Severity, error) {
	installedVersion, err := Parse(installed)
	if err != nil {
		return NoneSeverity, err
	}
	storeVersion, err := Parse(store)
	if err != nil {
		return NoneSeverity, err
	}
	return Classify(installedVersion, storeVersion), nil
}
