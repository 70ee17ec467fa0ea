// Package config handles configuration loading and merging for barlist.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--theme, --format, --limit, --width, --no-color)
//  2. Environment variables (BARLIST_THEME, BARLIST_FORMAT, BARLIST_LIMIT, NO_COLOR)
//  3. YAML config file (--config, .barlist.yaml in the working directory, or
//     <user config dir>/barlist/config.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Charts
//
// A config file declares one or more charts. Each chart names its columns and
// optionally a limit and a custom headline metric:
//
//	theme: orca
//	charts:
//	  - title: Models
//	    limit: 5
//	    columns:
//	      - {name: Model, key: value, bar: true}
//	      - {name: Cost, key: cost, main: true, render: cost}
//	      - {name: Calls, key: calls, render: compact}
//
// A chart without columns has them inferred from the first records loaded.
package config
