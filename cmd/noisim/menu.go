package main

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name      string
	token     string // catalogue name passed to LoadOpcode
	arity     int
	numParams int
	paramHint string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", token: "HADAMARD", arity: 1},
			{name: "Pauli-X (NOT)", token: "X", arity: 1},
			{name: "Pauli-Y", token: "Y", arity: 1},
			{name: "Pauli-Z", token: "Z", arity: 1},
			{name: "Phase (S)", token: "S", arity: 1},
			{name: "T Gate", token: "T", arity: 1},
			{name: "√X (SX)", token: "SX", arity: 1},
			{name: "Identity", token: "IDENTITY", arity: 1},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", token: "RX", arity: 1, numParams: 1, paramHint: "pi/2"},
			{name: "Rotate Y", token: "RY", arity: 1, numParams: 1, paramHint: "pi/2"},
			{name: "Rotate Z", token: "RZ", arity: 1, numParams: 1, paramHint: "pi/2"},
			{name: "Phase U1", token: "U1", arity: 1, numParams: 1, paramHint: "lambda"},
			{name: "Universal U2", token: "U2", arity: 1, numParams: 2, paramHint: "phi,lambda"},
			{name: "Universal U3", token: "U3", arity: 1, numParams: 3, paramHint: "theta,phi,lambda"},
			{name: "RPhi 90", token: "RPHI90", arity: 1, numParams: 1, paramHint: "phi"},
			{name: "RPhi 180", token: "RPHI180", arity: 1, numParams: 1, paramHint: "phi"},
			{name: "RPhi", token: "RPHI", arity: 1, numParams: 2, paramHint: "theta,phi"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", token: "CNOT", arity: 2},
			{name: "Controlled-Z", token: "CZ", arity: 2},
			{name: "SWAP", token: "SWAP", arity: 2},
			{name: "iSWAP", token: "ISWAP", arity: 2},
			{name: "XY", token: "XY", arity: 2, numParams: 1, paramHint: "theta"},
			{name: "XX", token: "XX", arity: 2, numParams: 1, paramHint: "theta"},
			{name: "YY", token: "YY", arity: 2, numParams: 1, paramHint: "theta"},
			{name: "ZZ", token: "ZZ", arity: 2, numParams: 1, paramHint: "theta"},
			{name: "Phase 2Q", token: "PHASE2Q", arity: 2, numParams: 3, paramHint: "theta1,theta2,thetazz"},
		},
	},
	{
		name: "Three Qubit",
		items: []menuItem{
			{name: "Toffoli (CCX)", token: "TOFFOLI", arity: 3},
			{name: "Fredkin (CSWAP)", token: "CSWAP", arity: 3},
		},
	},
}

// noisePreset is a canned noise configuration the TUI can cycle through.
type noisePreset struct {
	name    string
	global  map[string]float64
	readout [][2]float64
}

var noisePresets = []noisePreset{
	{name: "noiseless"},
	{name: "depolarizing 1%", global: map[string]float64{"depolarizing": 0.01}},
	{name: "bitflip 2% + damping 1%", global: map[string]float64{"bitflip": 0.02, "damping": 0.01}},
	{name: "readout skew", readout: nil}, // readout table built per qubit count
}
