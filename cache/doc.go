// SPDX-License-Identifier: MIT

// Package cache memoizes expensive datasets under canonical, parameter-derived
// names.
//
// A Key renders as
//
//	<family>_N<N>_NR<NR>_p<p with 4 decimals>[_<name><value>...]
//
// so float noise in p never produces a spurious miss or a collision. Blobs are
// stored under Key.Name() (the key plus ".bin") in a Store: LocalStore (a
// directory), MemoryStore, or the backends in cache/badgerstore and
// cache/miniostore.
//
// Lookup models the read branch as a two-variant Result (Hit or Miss). Fetch
// is the generate-or-load operation:
//
//   - Hit: the stored value is decoded and returned unmodified.
//   - Miss: the generator runs once, the value is encoded, persisted and returned.
//   - Storage errors other than absence propagate, wrapped with ErrStorage.
//   - Generator errors propagate, wrapped with ErrGenerator; nothing is written.
//
// Concurrent Fetch calls for the same key in one process share a single
// generation. Two processes sharing a namespace may still both generate; the
// last write wins.
//
// Blob format (little endian):
//
//	magic "PRCL" | version u16 | codec u16 | kind len u16 | kind | raw len u64 | crc32 u32 | body
//
// The body is the codec payload compressed with zstd (default), lz4 or stored
// raw; the CRC covers the uncompressed payload.
package cache
