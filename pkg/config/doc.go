/*
Package config loads kachi backup profiles.

	            +-------------+
	            |   Config    |
	            | (Profiles)  |
	            +------+------+
	                   |
	              Resolve()
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Locates the config file (explicit path or ~/.config/kachi/config.yaml)
- Parses profile definitions in document order
- Applies default profile inheritance once, at load time

🔄 Inheritance:
The profile named "default" is emitted first with its own values. Every other
profile gets its own sources followed by the default sources (duplicates are
kept) and uses the default backup_destination when it declares none.

🔍 Example:

	cfg, err := config.Load(ctx, "")
	if err != nil {
		return err
	}

	p, err := cfg.GetProfile("laptop")
	if errors.Is(err, config.ErrProfileNotFound) {
		// unknown profile
	}
*/
package config
