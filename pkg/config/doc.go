/*
Package config loads the extension group settings for fileorc.

	            +-------------+
	            |   Config    |
	            | (Snapshot)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   JSONC   | |  YAML   | |    HCL    |
	| Parser    | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads defaultExtensions, customExtensionLists, jumpToRelatedFileShortcut
  and excludePatterns
- Accepts VS Code settings.json (JSON with comments) as well as
  dedicated .fileorc.{yaml,yml,hcl,json} files
- Validates values and fills defaults

🔄 Flow:
1. Discover finds the file to use under the workspace (or takes an explicit path)
2. GetParser picks a parser from the file name
3. The parser decodes into a Config
4. Validate checks extensions and fills defaults

⚡ Lifecycle:
A Config is a snapshot. Commands load it fresh on every invocation and pass
it down explicitly; nothing is cached between invocations, so edits to the
file take effect on the next command.

🔍 Example (.fileorc.yaml):

	defaultExtensions: [".ts", ".css"]
	customExtensionLists:
	  web: [".ts", ".html", ".css"]
	  docs: [".md"]
	jumpToRelatedFileShortcut: alt+p
	excludePatterns: ["node_modules/**", "dist/**"]

🔍 Example (.fileorc.hcl):

	default_extensions = [".ts", ".css"]

	extension_list "web" {
	  extensions = [".ts", ".html", ".css"]
	}
*/
package config
