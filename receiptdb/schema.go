// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receiptdb

// amounts are stored as the int64 bit pattern of the uint64 value
const depositTableSchema = `
create table if not exists deposit (
	seq integer primary key autoincrement,
	asset blob(20) not null,
	user blob(20) not null,
	amount integer not null,
	reward integer not null,
	staked integer not null,
	rewardPerToken integer not null,
	time integer not null
);

CREATE INDEX if not exists assetIndex on deposit(asset);
CREATE INDEX if not exists userIndex on deposit(user);
CREATE INDEX if not exists timeIndex on deposit(time);
`
