// Package depot renders the versioned API reference of Fuel Depot. It reads
// docblock records that an offline extraction tool wrote for each framework
// version and turns them into three package-grouped navigation trees
// (constants, functions, classes) plus a detail pane for one source file.
//
// # Request flow
//
// One request makes a single synchronous pass:
//
//  1. Resolve: [ResolveVersion] picks the version from the route, the
//     visitor session, the default-flagged version or the last version, and
//     may short-circuit with a redirect or the no-versions state.
//
//  2. Aggregate: [Aggregate] groups the symbols of every record of the
//     version by package and sorts them; [ResolveDetail] decodes the first
//     record matching the selected file.
//
//  3. Build: [BuildTrees] assigns node ids and marks the package nodes the
//     visitor left expanded, as recorded in the [MenuStateCookie] cookie.
//
// [Browser.Browse] runs all three and returns a [Page] for the view layer.
//
// # Usage
//
//	s, err := store.NewStore("depot.db")
//	if err != nil { ... }
//	b := depot.New(s, depot.WithCache(16, 5*time.Minute))
//
//	page, err := b.Browse(ctx, depot.Request{
//		Params:  []string{"version", "3", "class", "Arr", "file", "f1c0"},
//		Session: sess,
//		Cookies: cookies,
//	})
//
// # Serialized fields
//
// The docblock, markers, constants, functions and classes columns hold JSON.
// A sequence field may hold an array, a single bare object or the
// [EmptySequence] sentinel; [List] normalizes all three into a slice.
package depot
