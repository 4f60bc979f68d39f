// Package snapshot persists a whole item store as one versioned blob.
//
// Layout (little endian):
//
//	[4]  magic "DATS"
//	[2]  format version
//	[1]  compression (0 none, 1 lz4, 2 zstd)
//	[1]  codec name length n
//	[n]  codec name
//	[8]  uncompressed payload length
//	...  payload blocks: [uncompressed uint32][compressed uint32][data]
//	[4]  CRC32 (IEEE) of everything before it
//
// The payload is the codec encoding of store.State. A block whose compressed
// length is 0 is stored raw.
//
// # Usage
//
//	bs := blobstore.NewLocalStore("/var/lib/datgo")
//	if _, err := snapshot.Save(ctx, bs, "mame.dats", st, snapshot.WithCompression(snapshot.CompressionZSTD)); err != nil {
//	    return err
//	}
//	st, err := snapshot.Load(ctx, bs, "mame.dats")
package snapshot
