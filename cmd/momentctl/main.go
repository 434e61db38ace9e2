// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Command momentctl runs the clustering pipeline offline over a YAML photo
// manifest and inspects the effective configuration.
//
//	momentctl cluster --input photos.yaml --context rex --kind pet --owner me
//	momentctl cluster --input photos.yaml --time-window 6h --json
//	momentctl config --config /etc/momentline/config.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
