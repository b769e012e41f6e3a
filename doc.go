// Package quackstore is the composition root for the flat-file record
// layer of the Quackstagram application.
//
// It persists typed domain records (accounts, pictures, like
// notifications) to delimited line-oriented text files, one file per
// entity kind, and layers repository-style operations on top: get by
// identity, filtered queries, and upsert-by-identity saves that rewrite
// the whole backing file atomically.
//
// Philosophy:
//
// The store assumes a single process owning one data directory, with
// short synchronous local-disk operations. Within that envelope it keeps
// strict semantics: missing files read as empty collections, malformed
// lines abort a read instead of dropping data, and failed writes surface
// as errors rather than being logged away.
//
// Features:
//
//   - **Generic record contract**: entities implement core.Model over
//     their own type; the store is written once against that contract.
//   - **Upsert-or-prepend saves**: updatable records replace in place,
//     new and append-only records land at the head of the file.
//   - **Atomic rewrites**: temp file plus rename, never a truncated file.
//   - **Like notifications**: a synchronous observer mechanism lets a
//     picture fan a new like out to notification records.
//   - **Change watching**: fsnotify-backed events when backing files
//     change underneath the process.
//
// Usage:
//
//	svc, err := quackstore.Open("data",
//		quackstore.WithLogger(logger),
//	)
//
//	user, err := svc.User(ctx, "ada")
//	err = svc.LikePicture(ctx, "bob", pictureID)
package quackstore
