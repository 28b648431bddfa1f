package registry

// objectTypes is the object catalog. The offsets are sprite-sheet
// corrections measured per texture; they are data, not derived values.
var objectTypes = []TypeMeta{
	{ID: 1, Solid: true, Tintable: true, Category: "blocks"},
	{ID: 2, Solid: true, Tintable: true, Category: "blocks"},
	{ID: 3, Solid: true, Tintable: true, Category: "blocks"},
	{ID: 4, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 5, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 6, Solid: true, Tintable: true, Category: "blocks"},
	{ID: 7, Solid: true, Tintable: true, Category: "blocks"},
	{ID: 83, Solid: true, Tintable: true, Category: "blocks"},

	{ID: 467, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 468, OffsetY: 14.25, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 469, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 470, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 471, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 472, Solid: false, Tintable: false, Category: "outlines"},
	{ID: 1338, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1339, OffsetX: 15, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1210, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1202, OffsetY: 13.5, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1203, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1204, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1209, Solid: true, Tintable: false, Category: "outlines"},
	{ID: 1205, Solid: false, Tintable: false, Category: "outlines"},
	{ID: 143, Solid: false, Tintable: false, Category: "outlines"},

	{ID: 693, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 694, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 695, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 696, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 697, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 698, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 699, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 700, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 701, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 702, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 877, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 878, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 888, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 889, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 895, Solid: false, Tintable: true, Category: "slopes"},
	{ID: 896, OffsetX: 15, Solid: false, Tintable: true, Category: "slopes"},

	{ID: 216, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 217, OffsetY: -9, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 218, OffsetY: -6, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 458, OffsetX: -7.5, OffsetY: -9.75, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1889, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1890, OffsetY: -9, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1891, OffsetY: -6, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1892, OffsetX: -7.5, OffsetY: -9.75, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 177, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 178, OffsetY: -8, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 179, OffsetY: -6, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1715, OffsetY: -12.5, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1722, OffsetY: -11, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1720, OffsetY: -11, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1721, OffsetY: -11, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 135, OffsetY: -11, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1717, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1718, OffsetX: 15, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1723, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1724, OffsetX: 15, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1725, OffsetY: -9, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1728, OffsetY: -7.5, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1729, OffsetY: -7.5, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1730, OffsetY: -7.5, Solid: false, Tintable: true, Category: "spikes"},
	{ID: 1731, OffsetX: -11.5, OffsetY: -11.5, Solid: false, Tintable: true, Category: "spikes"},

	{ID: 211, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1825, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 259, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 266, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 273, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 658, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 722, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 659, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 734, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 869, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 870, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 871, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1266, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1267, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 873, OffsetY: 7.5, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 874, OffsetX: -7.5, OffsetY: -7.5, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 880, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 881, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 882, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 883, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 890, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1247, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1279, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1280, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1281, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1277, Solid: false, Tintable: true, Category: "blocks"},
	{ID: 1278, Solid: false, Tintable: true, Category: "blocks"},

	{ID: 35, OffsetY: -13, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 140, OffsetY: -13, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1332, OffsetY: -12.5, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 67, OffsetY: -12, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 36, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 141, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1333, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 84, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1022, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1330, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1704, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1751, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 10, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 11, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 12, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 13, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 47, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 111, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 660, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 745, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1331, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 45, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 46, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 99, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 101, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1755, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1813, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1829, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1859, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1586, Solid: false, Tintable: false, Category: "utilities"},
	{ID: 1700, Solid: false, Tintable: false, Category: "utilities"},

	{ID: 18, OffsetY: 4, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 19, OffsetY: 4, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 20, OffsetY: -2, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 21, OffsetY: -8, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 48, OffsetY: 2, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 49, OffsetY: -2, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 113, OffsetY: 1, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 114, OffsetY: -2, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 115, OffsetY: -5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 157, OffsetY: -1.5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 158, OffsetY: -1.5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 159, OffsetY: -1.5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 227, OffsetY: -4, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 228, OffsetX: -7.5, OffsetY: -7.5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 242, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 419, OffsetY: -2.5, Solid: false, Tintable: true, Category: "grounddeco"},
	{ID: 420, OffsetY: -2.5, Solid: false, Tintable: true, Category: "grounddeco"},

	{ID: 41, OffsetY: 20, Solid: false, Tintable: true, Category: "deco"},
	{ID: 110, OffsetY: 2, Solid: false, Tintable: true, Category: "deco"},
	{ID: 106, OffsetY: 18, Solid: false, Tintable: true, Category: "deco"},
	{ID: 107, OffsetY: 4, Solid: false, Tintable: true, Category: "deco"},
	{ID: 503, OffsetY: -5, Solid: false, Tintable: true, Category: "deco"},
	{ID: 505, Solid: false, Tintable: true, Category: "deco"},
	{ID: 504, OffsetX: 5, OffsetY: -5, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1273, OffsetX: 5, OffsetY: -5, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1274, OffsetX: 5, OffsetY: -5, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1758, OffsetX: -7.25, OffsetY: 7, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1759, OffsetX: 10.5, OffsetY: 9, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1888, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1764, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1765, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1766, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1767, Solid: false, Tintable: true, Category: "deco"},
	{ID: 1768, Solid: false, Tintable: true, Category: "deco"},
	{ID: 719, OffsetY: -7.5, Solid: false, Tintable: true, Category: "deco"},
	{ID: 721, OffsetX: -11.5, OffsetY: -11.5, Solid: false, Tintable: true, Category: "deco"},

	{ID: 15, OffsetY: 6, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 16, OffsetY: -1, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 17, OffsetY: -8, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 132, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 460, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 494, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 50, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 51, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 52, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 53, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 54, Solid: false, Tintable: true, Category: "pulsing"},
	{ID: 60, Solid: false, Tintable: true, Category: "pulsing"},

	{ID: 1734, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1735, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1736, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 186, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 187, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 188, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1705, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1706, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1707, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1708, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1709, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1710, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 678, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 679, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 680, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1619, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1620, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 183, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 184, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 185, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 85, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 86, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 87, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 97, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 137, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 138, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 139, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1019, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1020, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1021, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 394, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 395, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 396, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 154, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 155, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 156, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 222, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 223, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 224, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1831, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1832, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1833, Solid: false, Tintable: true, Category: "sawblades"},
	{ID: 1834, Solid: false, Tintable: true, Category: "sawblades"},
}
