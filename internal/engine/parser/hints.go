package parser

// hintDatabase maps rule IDs to concise, actionable fix hints.
// Keys are rule IDs as they appear in LintItem.RuleID.
var hintDatabase = map[string]string{
	// --- C# compiler ---
	"CS0103": "The name is not in scope — check spelling, a missing using directive, or a missing declaration.",
	"CS0168": "Remove the unused variable declaration.",
	"CS0219": "Remove the variable; it is assigned but its value is never used.",
	"CS0246": "Add the missing using directive or package/project reference for this type.",
	"CS0618": "This member is obsolete — switch to the replacement named in the message.",
	"CS1591": "Add an XML doc comment to the public member, or disable GenerateDocumentationFile.",
	"CS1998": "Remove async or await something; the method runs synchronously.",
	"CS4014": "Await the call or assign the task explicitly so exceptions are observed.",
	"CS8600": "Guard against null before converting to a non-nullable type.",
	"CS8602": "Check for null before dereferencing, or use the ?. operator.",
	"CS8618": "Initialize the member in the constructor, mark it required, or make it nullable.",

	// --- .NET analyzers ---
	"CA1822":  "Mark the member static; it does not access instance data.",
	"CA2007":  "Call ConfigureAwait on the awaited task in library code.",
	"IDE0005": "Remove the unnecessary using directive.",

	// --- MSBuild / NuGet ---
	"MSB3277": "Align package versions or add a binding redirect for the conflicting assembly.",
	"NU1603":  "Pin the dependency to a version that exists on the feed.",
	"NU1701":  "The package targets .NET Framework; find a version built for the project's target framework.",
}

// HintFor returns the fix hint for ruleID, or "" if none is known.
func HintFor(ruleID string) string {
	return hintDatabase[ruleID]
}
