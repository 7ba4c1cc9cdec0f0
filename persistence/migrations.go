// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import "github.com/rubenv/sql-migrate"

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_decisions",
			Up: []string{
				`CREATE TABLE decisions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					outcome TEXT NOT NULL,
					address TEXT NOT NULL,
					mailbox TEXT NOT NULL,
					uid INTEGER NOT NULL,
					mailidhash TEXT NOT NULL,
					subject TEXT NOT NULL,
					decidedat DATETIME NOT NULL
				)`,
				`CREATE INDEX decisions_outcome_address ON decisions (outcome, address)`,
				`CREATE INDEX decisions_mailidhash ON decisions (mailidhash)`,
			},
			Down: []string{
				`DROP TABLE decisions`,
			},
		},
	},
}
