package eeprom

// Code tables for the single-byte categorical fields. Codes missing here are
// reported as 0xhh.

var unitTypes = map[byte]string{
	0x04: "FM2",
	0x06: "EM2",
	0x07: "FMQ",
}

var unitClasses = map[byte]string{
	0x01: "High",
	0x04: "Premium",
}

var regions = map[byte]string{
	0x01: "ER",
	0x02: "EU",
	0x03: "US",
	0x04: "RW",
	0x05: "CN",
	0x06: "JP",
	0x07: "KR",
	0x08: "Asia",
	0x09: "TW",
}

var brands = map[byte]string{
	0x01: "VW",
	0x02: "AU",
	0x03: "SK",
	0x04: "SE",
	0x05: "POG",
	0x06: "BYG",
}

var platforms = map[byte]string{
	0x01: "MQB",
	0x02: "MQT",
	0x03: "MLB",
	0x04: "MLE",
	0x05: "MLP",
}
