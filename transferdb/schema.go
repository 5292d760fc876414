// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transferdb

// balances are 8-byte big-endian blobs, sqlite integers can't hold a full uint64.
const balanceTableSchema = `
create table if not exists balance (
	address blob(32) primary key,
	amount blob(8) not null
);
`

const transferTableSchema = `
create table if not exists transfer (
	seq integer primary key autoincrement,
	action text not null,
	sender blob(32) not null,
	recipient blob(32) not null,
	amount blob(8) not null
);

CREATE INDEX if not exists senderIndex on transfer(sender);
CREATE INDEX if not exists recipientIndex on transfer(recipient);
`
