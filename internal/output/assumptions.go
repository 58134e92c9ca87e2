package output

// DefaultAssumptions lists key modeling simplifications rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Contribution months are counted by calendar month, inclusive of start and end",
	"Overlapping periods are merged; special-activity time wins over every other category",
	"The wage average leaves out the lowest 20% of wages; no monetary correction is applied",
	"Where a rule allows it, low wages are discarded while each removal raises the average and contribution time stays at the rule minimum",
	"The toll-50 transition rule uses an approximate check on total contribution time",
	"Amounts are estimates and carry no legal weight",
}
