// Package pathutil provides path rendering utilities shared by the fqn
// package and the command line tool.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// dotted display paths incrementally. The string is only materialized when
// [PathBuilder.String] is called, which keeps rendering cheap when paths are
// produced for every leaf of a large document.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("pipeline")
//	path.Push("stages")
//	path.PushQualified("stage", "identifier", "build")
//	path.String() // "pipeline.stages.stage[identifier:build]"
//
// [Build] wraps the Get/Put pair when the whole path is rendered at once.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It rejects symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
