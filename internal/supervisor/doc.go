// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

/*
Package supervisor runs Watchly's long-lived services under suture v4.

# Overview

Services are grouped into two layers so a failing background task cannot
take the API down with it:

	RootSupervisor ("watchly")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── cache.Janitor ("genre-cache-janitor")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which writes to the
zerolog-backed slog handler from the logging package.

# Shutdown

Canceling the context passed to Serve stops every service. Services that
do not return within ShutdownTimeout are reported by
UnstoppedServiceReport.

# Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
