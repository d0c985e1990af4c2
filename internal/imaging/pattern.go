package imaging

// samplePair is one binary test: the smoothed intensity at (x1, y1) against
// the one at (x2, y2), relative to the keypoint and its orientation.
type samplePair struct {
	x1, y1, x2, y2 int8
}

// briefPattern holds the descriptor tests, all inside patternRadius. It was
// learned offline the way rBRIEF is: candidate tests were scored over steered
// FAST patches from photographs and synthetic textures, then picked greedily
// for a mean response near one half and low correlation with the tests already
// chosen.
var briefPattern = [descriptorBits]samplePair{
	{-6, -11, -4, -9}, {3, -8, 4, 10}, {0, -7, 0, 7}, {2, -6, 3, -9},
	{10, -6, 8, -2}, {-12, -5, -9, -7}, {-8, -5, -9, 7}, {10, -5, 12, 1},
	{-4, -2, -8, -10}, {7, -2, 11, -3}, {-3, -1, -3, 1}, {-11, 0, -11, -4},
	{-1, 1, -1, -12}, {3, 4, 5, 8}, {9, 7, 6, 1}, {-11, -3, -6, -2},
	{-12, 3, -7, 3}, {-11, 4, -11, 6}, {9, 4, 12, -1}, {5, -9, 3, 2},
	{-2, -7, -2, -10}, {-2, -4, -4, 12}, {5, 2, 5, -1}, {-5, 9, -3, 5},
	{-2, 10, -2, -11}, {7, 3, 10, 4}, {-5, 6, -3, 1}, {3, -11, 3, -10},
	{8, -10, 7, 9}, {-6, -3, -5, -2}, {-3, -2, -3, -3}, {3, 5, 3, 4},
	{-11, 6, -10, 7}, {1, -11, 1, 11}, {7, -7, 8, -7}, {-7, 9, -6, 9},
	{4, 10, 4, 9}, {-8, 7, -9, 9}, {7, 10, 8, 10}, {0, 0, 0, 1},
	{-8, -8, -8, -9}, {0, -2, 0, -3}, {12, 5, 10, 4}, {4, -11, 5, -12},
	{-1, 6, -1, 11}, {6, 1, 7, 2}, {-7, 0, -6, -1}, {5, 7, 7, 9},
	{7, -10, 5, -6}, {-4, -8, -3, 4}, {1, 5, 1, 1}, {2, 0, 2, -2},
	{10, -6, 11, -5}, {1, -6, 1, -4}, {6, -4, 6, -1}, {-5, 9, -5, 10},
	{0, 13, 0, -7}, {13, 0, 10, 0}, {6, 8, 6, 7}, {10, -7, 10, -6},
	{-3, -3, -3, -4}, {5, -3, 6, -4}, {-6, -1, -6, -3}, {-10, -4, -12, -5},
	{-7, -9, -6, -9}, {-9, -5, -9, -6}, {-5, 5, -5, 6}, {-6, 6, -5, 6},
	{9, 9, 8, 8}, {6, 3, 7, 3}, {5, 3, 5, 2}, {-4, 12, -3, 11},
	{4, 12, 4, 11}, {12, 4, 12, 3}, {9, 6, 12, 4}, {-8, 1, -7, 3},
	{-9, 8, -8, 8}, {-11, 2, -13, 0}, {-2, 4, -2, 5}, {6, -10, 7, -10},
	{9, 7, 9, 6}, {-1, -9, 0, -13}, {0, 13, 0, 10}, {2, 7, 2, 6},
	{-9, 2, -11, 4}, {9, 8, 10, 8}, {-2, 5, -2, 6}, {-4, 2, -3, 2},
	{-5, 12, -4, 12}, {-5, -4, -4, -4}, {6, -2, 7, -1}, {-9, -8, -8, -8},
	{1, 11, 2, 12}, {4, 11, 5, 11}, {-4, 11, -4, 12}, {-2, -12, -1, -12},
	{-5, 7, -5, 8}, {-11, 1, -11, 2}, {-5, -11, -4, -12}, {-7, 2, -5, 2},
	{-9, -3, -12, -1}, {-3, 12, -2, 12}, {-2, -7, -1, -5}, {3, -2, 4, -2},
	{8, 9, 9, 8}, {11, -6, 9, -6}, {-7, -6, -6, -7}, {0, -13, 1, -11},
	{2, -11, 3, -11}, {-6, -1, -6, 0}, {11, 0, 12, 1}, {0, 6, 2, -12},
	{7, -10, 8, -9}, {-3, -9, -2, -9}, {0, -4, 0, -3}, {-11, 5, -12, 5},
	{1, 4, 1, 5}, {3, -3, 3, -4}, {4, -1, 5, -1}, {9, -6, 10, -7},
	{-7, 1, -8, 2}, {-10, 7, -8, 10}, {-3, -2, -3, -1}, {-8, 1, -8, 0},
	{-8, -10, -4, 11}, {-4, 8, -3, 8}, {8, -1, 8, -2}, {-11, 6, -10, 5},
	{-6, -6, -9, -7}, {-4, -4, -3, -4}, {-1, 10, 0, 10}, {-9, -8, -10, -8},
	{-12, 4, -6, -9}, {-5, 2, -4, 3}, {-9, -5, -9, -3}, {9, 0, 8, -1},
	{-4, 5, -12, -5}, {-5, -2, -3, -1}, {3, -8, 4, -8}, {3, 5, 4, 5},
	{5, 5, 6, 3}, {5, -7, 6, -5}, {0, -10, 1, -10}, {6, -6, 5, -5},
	{8, 2, 8, 3}, {-12, 4, -12, 3}, {2, -4, 3, -5}, {-10, -8, -9, -6},
	{-12, 0, -11, 0}, {-3, -10, -8, 10}, {4, -6, 10, 6}, {7, -1, 6, 0},
	{-8, 4, -8, 3}, {0, 10, 1, 9}, {-8, 6, -9, 6}, {-7, 7, -8, 4},
	{2, 8, 3, 8}, {-5, -12, -5, -11}, {2, 2, 3, 3}, {4, -2, 4, 12},
	{-3, 0, -5, 2}, {-4, 6, -8, 8}, {8, -10, 7, -10}, {11, 5, 11, 6},
	{-4, 2, -4, 1}, {6, -9, 6, -11}, {-7, 10, -8, 10}, {-3, -4, -2, -7},
	{5, 12, 8, 9}, {-3, -2, -2, -2}, {3, 5, 11, -6}, {-2, 10, -3, 11},
	{-2, 5, -1, 4}, {10, -8, 9, -9}, {-5, -3, -8, -2}, {9, -2, 6, -6},
	{-8, -10, -9, -9}, {-2, -10, -3, -11}, {4, 6, 1, -4}, {-6, 7, -3, 10},
	{1, 9, 5, -11}, {-6, 11, -6, 10}, {0, 6, 1, 7}, {11, 0, 7, 10},
	{9, 7, 9, 8}, {-3, 8, -6, -4}, {-2, -4, -1, -3}, {-5, -4, -5, -3},
	{0, -13, -5, 12}, {-3, -12, -5, -12}, {-5, -12, 0, 13}, {-5, 12, -6, 11},
	{-5, -8, -5, -7}, {4, 4, 3, 3}, {-3, 3, -2, 3}, {7, 6, 4, 5},
	{8, 9, 8, 10}, {2, -9, 4, -6}, {7, -3, 6, -3}, {11, 1, 3, 1},
	{7, 6, 6, 7}, {6, 9, 5, 9}, {-1, -7, -5, 8}, {0, 13, -2, 12},
	{0, 7, -5, -12}, {2, 7, 5, -5}, {2, 9, 1, 8}, {5, -12, 12, 3},
	{-13, 0, -3, 10}, {-2, -6, 0, -8}, {-3, 4, -5, 5}, {-2, -10, -3, -9},
	{0, 5, 1, 5}, {5, -12, 4, -12}, {-3, 1, -2, 1}, {3, -12, 0, -10},
	{4, 12, 2, 12}, {1, -5, 2, -5}, {5, 11, 0, -13}, {-5, -6, -6, -6},
	{-1, -5, 0, -5}, {-3, 6, -4, 5}, {-1, -9, 2, 4}, {-1, 4, 0, 5},
	{-4, 0, -5, 0}, {6, -7, 5, -7}, {2, 7, 1, 8}, {-1, 9, -2, 8},
	{4, 11, -1, -4}, {4, 1, 3, 2}, {0, -3, 1, -4}, {3, -9, 1, -11},
	{2, -4, 4, -2}, {4, 6, 3, 7}, {-11, -6, -1, -12}, {5, -3, 4, -3},
	{-7, -7, -1, 1}, {-3, -8, -5, -7}, {-6, 0, -2, -4}, {2, 12, 10, -8},
	{-3, -8, 1, 10}, {-11, 6, -1, -3}, {1, -10, 6, 7}, {2, -9, -2, 10},
	{12, -4, 2, -9}, {-3, 1, -1, 4}, {5, -3, 2, -1}, {1, 0, 2, 0},
	{-5, 6, 0, -11}, {-2, 8, -3, 8}, {-1, 2, 0, 1}, {3, -7, -1, 4},
	{3, -8, 2, -8}, {7, 2, 2, -1}, {-1, 0, -2, -1}, {0, -9, -2, -9},
}
