// Package config loads nbrewrite settings from YAML, JSON or HCL files.
//
// A config file is optional. Find looks for .nbrewrite.yaml, .nbrewrite.yml,
// .nbrewrite.json and .nbrewrite.hcl in that order and falls back to Default.
// Every format decodes on top of Default, so unset fields keep their default
// values. A relative root is resolved against the directory of the config
// file. HCL expressions can reference `cwd`.
//
// 🔍 Example:
//
//	# .nbrewrite.yaml
//	root: site
//	exclude:
//	  - "**/.ipynb_checkpoints/**"
//	  - "drafts/**"
//	skip_missing: true
//
//	cfg, err := config.Find(ctx, ".", "")
package config
