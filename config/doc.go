// Package config loads processing profiles: declarative descriptions of
// what to do to a DAT (set variant, filters, cleaning, deduplication).
//
// Profiles are TOML or YAML, chosen by file extension. Values not present in
// the file keep the embedded defaults.
//
//	merge_type = "split"
//	filters = ["rom.status!=nodump", "machine.isbios!=true"]
//	dedup = "full"
//	dedup_key = "sha1"
//	one_game_per_region = true
//	regions = ["Europe", "USA"]
package config
