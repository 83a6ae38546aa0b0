// Package maven reads build metadata from pom.xml files.
//
// # Overview
//
// [Parse] turns a pom document into an effective [Model]: every directory the
// build section declares (or inherits from the super POM) is interpolated and
// made absolute. Supported expressions are ${basedir}, ${project.basedir},
// ${project.build.*}, the project coordinates and entries of <properties>.
// Parent POMs and profiles are not evaluated.
//
// [Provider] adapts models to the locator: BuildMetadata returns the ordered
// resource roots and output folders of a project as project-relative paths.
//
//	pv := maven.NewProvider(cache.NewNullCache(), logger)
//	md, ok := pv.BuildMetadata(project)
//	if ok {
//	    fmt.Println(md.ResourceRoots)
//	}
package maven
