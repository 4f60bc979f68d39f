package filter

import "github.com/hupe1980/datgo/store"

// Execute runs r over every unmarked item of every bucket and sets the
// removal mark on items that fail it. It returns the number of items marked.
func Execute(st *store.Store, r *Runner) int {
	if r.Len() == 0 {
		return 0
	}

	marked := 0
	for _, key := range st.BucketKeys() {
		for _, e := range st.GetItemsForBucket(key, true) {
			machine, _ := st.GetMachine(e.Item.MachineID)
			if !r.Keep(e.Item, machine) {
				e.Item.Removed = true
				marked++
			}
		}
	}
	return marked
}
