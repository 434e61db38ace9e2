// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package supervisor runs Momentline's long-lived services under a suture v4
supervisor tree.

	momentline (root)
	├── data-layer
	│   └── store-gc        periodic BadgerDB value log GC
	└── api-layer
	    └── http-server     Chi router

A failing service is restarted with suture's backoff without taking down its
siblings. Supervisor events are logged through sutureslog and the zerolog
slog adapter.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	tree.AddDataService(services.NewStoreGCService(store, cfg.Store.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
