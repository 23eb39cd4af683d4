/*
Package distributor implements Distributor contract which keeps a custodial
fund split by fixed percentages.

Distributor contract accepts deposits of a fixed size in a single NEP-17 asset
(GAS unless another token is set at deployment). Every deposit is split into
three buckets: 85% is burnt by sending it to the burn sink, 5% is sent to the
development sink and 10% is kept on the contract account as a jackpot. Shares
are rounded down, the remainder stays on the contract account and belongs to
no bucket.

Controller is the only account allowed to withdraw the jackpot, to change the
deposit amount and to pass the control to another account.

# Contract notifications

Payout notification. This notification is produced for every transfer made by
the contract. Action is "distribute" for deposit shares and "withdraw" for
jackpot withdrawals.

	Payout:
	  - name: action
	    type: String
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Deposit notification. This notification is produced after the deposit is
split and the shares are transferred.

	Deposit:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

DepositAmountChanged notification. This notification is produced when the
controller changes the deposit amount.

	DepositAmountChanged:
	  - name: old
	    type: Integer
	  - name: new
	    type: Integer

ControllerChanged notification. This notification is produced when the
control is passed to another account.

	ControllerChanged:
	  - name: old
	    type: Hash160
	  - name: new
	    type: Hash160
*/
package distributor

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'config' -> std.Serialize(Config)
   controller, sinks, asset and deposit amount
 - 'record' -> std.Serialize(Record)
   totals accumulated in burn, jackpot and development buckets

# Layout
Both items are written at deployment and are never deleted. Field order of
Config and Record must not change between versions.
*/
