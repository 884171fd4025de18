package levels

// defaultThresholds is the stock ASA experience requirement per level,
// one-indexed: defaultThresholds[0] is level 1. Servers with custom
// progression override it by passing their own Table.
var defaultThresholds = []float64{
	0, // level 1
	10, 25, 45, 70, 100, // 2-6
	135, 175, 220, 270, 325, // 7-11
	385, 450, 520, 595, 675, // 12-16
	760, 850, 945, 1045, 1150, // 17-21
	1260, 1375, 1495, 1620, 1750, // 22-26
	1885, 2025, 2170, 2320, 2475, // 27-31
	2635, 2800, 2970, 3145, 3325, // 32-36
	3510, 3700, 3895, 4095, 4300, // 37-41
	4510, 4725, 4945, 5170, 5400, // 42-46
	5635, 5875, 6120, 6370, 6625, // 47-51
	6885, 7150, 7420, 7695, 7975, // 52-56
	8260, 8550, 8845, 9145, 9450, // 57-61
	9760, 10075, 10395, 10720, 11050, // 62-66
	11385, 11725, 12070, 12420, 12775, // 67-71
	13135, 13500, 13870, 14245, 14625, // 72-76
	15010, 15400, 15795, 16195, 16600, // 77-81
	17010, 17425, 17845, 18270, 18700, // 82-86
	19135, 19575, 20020, 20470, 20925, // 87-91
	21385, 21850, 22320, 22795, 23275, // 92-96
	23760, 24250, 24745, 25245, 25750, // 97-101
	26260, 26775, 27295, 27820, 28350, // 102-106
	28885, 29425, 29970, 30520, 31075, // 107-111
	31635, 32200, 32770, 33345, 33925, // 112-116
	34510, 35100, 35695, 36295, 36900, // 117-121
	37510, 38125, 38745, 39370, 40000, // 122-126
	40635, 41275, 41920, 42570, 43225, // 127-131
	43885, 44550, 45220, 45895, 46575, // 132-136
	47260, 47950, 48645, 49345, 50050, // 137-141
	50760, 51475, 52195, 52920, 53650, // 142-146
	54385, 55125, 55870, 56620, 57375, // 147-151
	58135, 58900, 59670, 60445, 61225, // 152-156
	62010, 62800, 63595, 64395, 65200, // 157-161
	66010, 66825, 67645, 68470, 69300, // 162-166
	70135, 70975, 71820, 72670, 73525, // 167-171
	74385, 75250, 76120, 76995, 77875, // 172-176
	78760, 79650, 80545, 81445, // 177-180
}
