// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	ModuleNotFoundId
	ModuleNameMismatchId
	ModuleParseErrorId
	CatalogInvalidId
	ConfigLoadFailedId
	PermissionDeniedId
	ValidationFailedId
	ImportCycleId
)

const docsBase = "https://sdml.io/guides/"

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // never empty for registered issues
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the message followed by a "See also" list of links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found

The file named on the command line does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Run the command from the directory holding the module
- Use ` + "`-`" + ` to read a module from standard input
`,
		docLinks: []HttpLink{docsBase + "cli"},
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found

No file could be found for the module. A module named ` + "`rentals`" + ` is looked for
as ` + "`rentals.sdm`" + `, ` + "`rentals.sdml`" + `, ` + "`rentals/rentals.sdm`" + ` or
` + "`rentals/rentals.sdml`" + ` in each search directory, in this order:

1. The directory of the importing module
2. Each directory listed in ` + "`SDML_PATH`" + `
3. Each entry of ` + "`search_paths`" + ` in the configuration file
4. The current working directory

A module catalog (` + "`sdml-catalog.json`" + `) can map module names to files directly.

## Things you can try:
- Add the module's directory to ` + "`SDML_PATH`" + `
- Add a ` + "`--path`" + ` flag for the directory
- Add an entry for the module to the catalog
`,
		docLinks: []HttpLink{docsBase + "module-resolution"},
	}

	moduleNameMismatchIssue = &Issue{
		id: ModuleNameMismatchId,
		mdMsg: `
# Module name mismatch

A file was found for the requested module but it declares a different module.
The name after the ` + "`module`" + ` keyword must match the name used to import it.

## Things you can try:
- Rename the module declaration to match the file name
- Fix the import statement in the importing module
- Check the catalog entry points at the right file
`,
		docLinks: []HttpLink{docsBase + "module-resolution"},
	}

	moduleParseErrorIssue = &Issue{
		id: ModuleParseErrorId,
		mdMsg: `
# Module could not be parsed

The module source has syntax errors. Nothing from the file was added to
the module store, so modules importing it may report further errors.

## Things you can try:
- Look at the first reported error, later ones often follow from it
- Check every block opened with ` + "`is`" + ` is closed with ` + "`end`" + `
- Run ` + "`sdml source <module>`" + ` to see the file the loader read
`,
		docLinks: []HttpLink{docsBase + "syntax"},
	}

	catalogInvalidIssue = &Issue{
		id: CatalogInvalidId,
		mdMsg: `
# Invalid module catalog

The catalog file is not valid. A catalog is a JSON object with a ` + "`base`" + `
URL and an ` + "`entries`" + ` object mapping module names to items or groups:

~~~json
{
  "base": "https://example.org/rentals/",
  "entries": {
    "vehicle": { "item": { "relative_url": "vehicle#", "relative_path": "vehicle.sdm" } }
  }
}
~~~

## Things you can try:
- Validate the JSON syntax
- Point ` + "`SDML_CATALOG_FILE`" + ` at another catalog
`,
		docLinks: []HttpLink{docsBase + "catalogs"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the configuration schema.

## Things you can try:
- Run ` + "`sdml config show`" + ` to see the effective configuration
- Remove unknown fields, the schema is closed
- Check ` + "`SDML_*`" + ` environment variables for invalid values
`,
		docLinks: []HttpLink{docsBase + "configuration"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

A module, catalog or configuration file could not be read.

## Things you can try:
- Check the file's permissions
- Check the permissions of the directories on its path
`,
		docLinks: []HttpLink{docsBase + "cli"},
	}

	validationFailedIssue = &Issue{
		id: ValidationFailedId,
		mdMsg: `
# Validation failed

One or more diagnostics at or above the reporting level were emitted.

## Things you can try:
- Run ` + "`sdml explain <code>`" + ` for any code in the report
- Lower the level with ` + "`--level warning`" + ` to see more context
`,
		docLinks: []HttpLink{docsBase + "validation"},
	}

	importCycleIssue = &Issue{
		id: ImportCycleId,
		mdMsg: `
# Import cycle

Modules import each other in a cycle. Loading tolerates cycles, but tools
that need a dependency order cannot produce one.

## Things you can try:
- Run ` + "`sdml deps --format dot`" + ` and look for the loop
- Move the shared definitions into a new module imported by both
`,
		docLinks: []HttpLink{docsBase + "modules"},
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():       fileNotFoundIssue,
		moduleNotFoundIssue.Id():     moduleNotFoundIssue,
		moduleNameMismatchIssue.Id(): moduleNameMismatchIssue,
		moduleParseErrorIssue.Id():   moduleParseErrorIssue,
		catalogInvalidIssue.Id():     catalogInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		validationFailedIssue.Id():   validationFailedIssue,
		importCycleIssue.Id():        importCycleIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
