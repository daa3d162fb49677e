/*
Package config loads and validates patch job configuration.

A configuration names exactly one target file and an ordered list of
replacement rules. Rule order matters: rules are applied sequentially,
each one over the output of the previous.

Supported formats, selected by file extension:
  - .yaml / .yml — YAML
  - .json        — JSON
  - .hcl         — HCL
  - .patchrc     — tried as YAML, then HCL

🔍 Example (YAML):

	target: src/class_context_extractor.cpp
	rules:
	  - old: "#include <set>"
	    new: "#include <unordered_set>"

🔍 Example (HCL):

	target = "src/class_context_extractor.cpp"

	rule {
	  old = "#include <set>"
	  new = "#include <unordered_set>"
	}

Parsers register themselves via Register; Load picks the first parser whose
CanParse accepts the filename.
*/
package config
