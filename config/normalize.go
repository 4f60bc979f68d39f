package config

import "strings"

func (p *Profile) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Dedup = DedupMode(strings.ToLower(strings.TrimSpace(string(p.Dedup))))
	if p.Dedup == "" {
		p.Dedup = DedupNone
	}
	p.DedupKey = strings.ToLower(strings.TrimSpace(p.DedupKey))
	p.Compression = strings.ToLower(strings.TrimSpace(p.Compression))
	p.Filters = compact(p.Filters)
	p.Regions = compact(p.Regions)
}

// compact trims entries and drops empty ones.
func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
