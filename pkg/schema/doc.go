// Package schema declares model types in YAML or JSON documents and builds
// them into registered *model.Type values.
//
// A document lists types with their properties:
//
//	types:
//	  - name: Post
//	    idPrefix: post-
//	    dynamicProperties: false
//	    properties:
//	      title: String          # scalar marker
//	      body: ~                # passthrough
//	      author: {one: Author}  # single nested instance
//	      tags: {many: true}     # list of raw values
//	      comments: [Comment]    # list of Comment instances
//
// Types may also be given as a mapping keyed by name. Property order follows
// the document. References are resolved across every document passed to a
// single Catalog.Define or Catalog.LoadFS call.
package schema
