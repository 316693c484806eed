// Package schema parses message schema text into a Message.
//
// A schema is one declaration per line, in one of two shapes:
//
//	<type> <name>              storage field
//	<type> <name> = <literal>  constant field
//
// Blank lines are skipped. Any other token count is a malformed declaration.
// Types are resolved against a types.Table and every name must match
// [A-Za-z_][A-Za-z0-9_]* in full. Declaration order is preserved exactly:
// it fixes both member order and byte offsets.
//
// # Usage
//
//	msg, err := schema.Parse(src, "Reading")
//	for _, f := range msg.Storage() {
//		fmt.Println(f.Name, f.Type.Width)
//	}
//
// Parsing stops at the first error. No partial Message is returned.
package schema
