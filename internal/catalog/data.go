// BYZRA ⸻ internal/catalog/data.go
// built-in reference data

package catalog

import "mirage/internal/metadata"

var builtinProfiles = []BrandProfile{
	{Make: "Apple", Class: Phone, SoftwarePrefixes: []string{"iOS"}, Models: []string{
		"iPhone 15 Pro Max", "iPhone 15 Pro", "iPhone 15 Plus", "iPhone 15",
		"iPhone 14 Pro Max", "iPhone 14 Pro", "iPhone 14 Plus", "iPhone 14",
		"iPhone 13 Pro Max", "iPhone 13 Pro", "iPhone 13", "iPhone 13 Mini",
		"iPhone 12 Pro Max", "iPhone 12 Pro", "iPhone 12", "iPhone 12 Mini",
		"iPhone 11 Pro Max", "iPhone 11 Pro", "iPhone 11", "iPhone XS Max",
		"iPhone XS", "iPhone XR", "iPhone X", "iPhone SE (3rd gen)",
		"iPhone SE (2nd gen)", "iPad Pro 12.9-inch (6th gen)", "iPad Pro 11-inch (4th gen)",
	}},
	{Make: "Samsung", Class: Phone, SoftwarePrefixes: []string{"One UI"}, Models: []string{
		"Galaxy S23 Ultra", "Galaxy S23+", "Galaxy S23", "Galaxy S22 Ultra",
		"Galaxy S22+", "Galaxy S22", "Galaxy S21 FE", "Galaxy S21 Ultra",
		"Galaxy S21+", "Galaxy S21", "Galaxy Z Fold5", "Galaxy Z Fold4",
		"Galaxy Z Fold3", "Galaxy Z Flip5", "Galaxy Z Flip4", "Galaxy Z Flip3",
		"Galaxy Note 20 Ultra", "Galaxy Note 20", "Galaxy A54", "Galaxy A53",
		"Galaxy A34", "Galaxy A33", "Galaxy M34", "Galaxy F54",
	}},
	{Make: "Huawei", Class: Phone, SoftwarePrefixes: []string{"HarmonyOS", "EMUI"}, Models: []string{
		"P60 Pro", "P60", "P50 Pro", "P50", "P40 Pro+", "P40 Pro", "P40",
		"Mate 50 Pro", "Mate 50", "Mate 40 Pro+", "Mate 40 Pro", "Mate 40",
		"Mate 30 Pro", "Mate 30", "Mate X3", "Mate X2", "Mate Xs2", "Mate Xs",
		"Nova 12 Pro", "Nova 12", "Nova 11 Pro", "Nova 11", "Nova 10 Pro", "Nova 10",
	}},
	{Make: "Xiaomi", Class: Phone, SoftwarePrefixes: []string{"MIUI"}, Models: []string{
		"Xiaomi 13 Ultra", "Xiaomi 13 Pro", "Xiaomi 13", "Xiaomi 13 Lite",
		"Xiaomi 12 Ultra", "Xiaomi 12 Pro", "Xiaomi 12", "Xiaomi 12 Lite",
		"Xiaomi 12S Ultra", "Xiaomi 12S Pro", "Xiaomi 12S", "Xiaomi 11 Ultra",
		"Xiaomi 11 Pro", "Xiaomi 11", "Redmi Note 12 Pro+", "Redmi Note 12 Pro",
		"Redmi Note 12", "Redmi Note 11 Pro+", "Redmi Note 11 Pro", "Redmi Note 11",
		"POCO F5 Pro", "POCO F5", "POCO F4 GT", "POCO F4", "POCO X5 Pro", "POCO X5",
	}},
	{Make: "Google", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"Pixel 7 Pro", "Pixel 7", "Pixel 7a", "Pixel 6 Pro", "Pixel 6", "Pixel 6a",
		"Pixel 5", "Pixel 5a", "Pixel 4 XL", "Pixel 4", "Pixel 4a", "Pixel 3 XL",
		"Pixel 3", "Pixel 3a XL", "Pixel 3a", "Pixel Fold",
	}},
	{Make: "OnePlus", Class: Phone, SoftwarePrefixes: []string{"OxygenOS"}, Models: []string{
		"OnePlus 11", "OnePlus 10 Pro", "OnePlus 10T", "OnePlus 10R", "OnePlus 9 Pro",
		"OnePlus 9", "OnePlus 9R", "OnePlus 9RT", "OnePlus 8 Pro", "OnePlus 8", "OnePlus 8T",
		"OnePlus Nord 3", "OnePlus Nord 2T", "OnePlus Nord 2", "OnePlus Nord CE 3", "OnePlus Nord CE 2",
	}},
	{Make: "OPPO", Class: Phone, SoftwarePrefixes: []string{"ColorOS"}, Models: []string{
		"Find X6 Pro", "Find X6", "Find X5 Pro", "Find X5", "Find X5 Lite", "Find X3 Pro",
		"Find X3", "Find X3 Lite", "Find X3 Neo", "Find N2 Flip", "Find N2", "Find N",
		"Reno10 Pro+", "Reno10 Pro", "Reno10", "Reno9 Pro+", "Reno9 Pro", "Reno9",
		"Reno8 Pro+", "Reno8 Pro", "Reno8", "F23", "F21 Pro", "F19 Pro+",
	}},
	{Make: "Vivo", Class: Phone, SoftwarePrefixes: []string{"Funtouch OS", "Origin OS"}, Models: []string{
		"X90 Pro+", "X90 Pro", "X90", "X80 Pro", "X80", "X70 Pro+", "X70 Pro", "X70",
		"X60 Pro+", "X60 Pro", "X60", "V29 Pro", "V29", "V27 Pro", "V27", "V25 Pro", "V25",
		"V23 Pro", "V23", "Y100", "Y77", "Y73", "Y55",
	}},
	{Make: "Sony", Class: Camera, SoftwarePrefixes: []string{"Android", "Sony"}, Models: []string{
		"Xperia 1 V", "Xperia 1 IV", "Xperia 1 III", "Xperia 1 II", "Xperia 1",
		"Xperia 5 IV", "Xperia 5 III", "Xperia 5 II", "Xperia 5", "Xperia 10 V",
		"Xperia 10 IV", "Xperia 10 III", "Xperia 10 II", "Xperia 10", "Xperia Pro-I", "Xperia Pro",
		"ILCE-7M4", "ILCE-7RM5", "ILCE-1", "ZV-E10",
	}},
	{Make: "LG", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"V60 ThinQ", "V50 ThinQ", "V40 ThinQ", "G8 ThinQ", "G7 ThinQ", "Velvet", "Wing", "K92", "K52", "K42", "Stylo 6",
	}},
	{Make: "Nokia", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"X30", "X20", "X10", "G60", "G50", "G21", "G20", "G10", "C32", "C22", "C21", "C12", "C02",
	}},
	{Make: "Motorola", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"Edge 40 Pro", "Edge 40", "Edge 30 Ultra", "Edge 30 Pro", "Edge 30", "Edge 20 Pro",
		"Edge 20", "Razr 40 Ultra", "Razr 40", "Moto G84", "Moto G73", "Moto G72", "Moto G53", "Moto G52",
	}},
	{Make: "Honor", Class: Phone, SoftwarePrefixes: []string{"MagicOS"}, Models: []string{
		"Magic5 Pro", "Magic5", "Magic4 Pro", "Magic4", "Magic V2", "Magic Vs", "Magic V",
		"Honor 90 Pro", "Honor 90", "Honor 80 Pro", "Honor 80", "Honor 70 Pro+", "Honor 70 Pro", "Honor 70",
	}},
	{Make: "Realme", Class: Phone, SoftwarePrefixes: []string{"Realme UI"}, Models: []string{
		"GT 5 Pro", "GT 5", "GT 3 Pro", "GT 3", "GT Neo5", "GT Neo3", "GT Neo2", "GT Neo",
		"11 Pro+", "11 Pro", "11", "10 Pro+", "10 Pro", "10", "9 Pro+", "9 Pro", "9",
	}},
	{Make: "ZTE", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"Axon 40 Ultra", "Axon 30 Ultra", "Axon 20", "Blade A73", "Blade A72", "Blade A52",
	}},
	{Make: "Asus", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"Zenfone 10", "Zenfone 9", "Zenfone 8", "ROG Phone 7 Ultimate", "ROG Phone 7", "ROG Phone 6",
	}},
	{Make: "Lenovo", Class: Phone, SoftwarePrefixes: []string{"Android"}, Models: []string{
		"Legion Phone Duel 2", "Legion Phone Duel", "K14 Plus", "K14", "K13", "K12 Pro",
	}},
	{Make: "Meizu", Class: Phone, SoftwarePrefixes: []string{"Flyme"}, Models: []string{
		"20 Pro", "20", "18 Pro", "18", "17 Pro", "17", "16s Pro", "16s",
	}},
	{Make: "Canon", Class: Camera, SoftwarePrefixes: []string{"Canon"}, Models: []string{
		"EOS R5", "EOS R6 Mark II", "EOS R6", "EOS R7", "EOS R10", "EOS R50",
		"EOS 5D Mark IV", "EOS 6D Mark II", "EOS 90D", "EOS 850D", "PowerShot G7 X Mark III",
	}},
	{Make: "Nikon", Class: Camera, SoftwarePrefixes: []string{"Nikon"}, Models: []string{
		"Z9", "Z8", "Z7 II", "Z6 II", "Z5", "Z50", "Z30", "D850", "D780", "D7500", "D5600", "D3500", "COOLPIX P1000",
	}},
	{Make: "Panasonic", Class: Camera, Models: []string{
		"Lumix DC-S5 II", "Lumix DC-S5", "Lumix DC-S1R", "Lumix DC-S1", "Lumix DC-G9", "Lumix DC-GH6", "Lumix DC-GH5 II",
	}},
	{Make: "Fujifilm", Class: Camera, Models: []string{
		"X-T5", "X-T4", "X-T3", "X-H2S", "X-H2", "X-H1", "X-Pro3", "X-Pro2", "X-E4", "X-S20", "X-S10", "GFX 100S", "GFX 50S II",
	}},
	{Make: "Olympus", Class: Camera, Models: []string{
		"OM-1", "OM-5", "OM-D E-M1 Mark III", "OM-D E-M5 Mark III", "OM-D E-M10 Mark IV", "PEN E-P7", "Tough TG-6",
	}},
	{Make: "Pentax", Class: Camera, Models: []string{
		"K-3 Mark III", "K-1 Mark II", "K-70", "KP", "645Z",
	}},
	{Make: "Leica", Class: Camera, Models: []string{
		"M11", "M10-R", "M10-P", "M10", "Q3", "Q2", "SL2-S", "SL2", "CL", "TL2", "D-Lux 7",
	}},
	{Make: "GoPro", Class: Other, Models: []string{
		"HERO11 Black", "HERO10 Black", "HERO9 Black", "HERO8 Black", "MAX",
	}},
	{Make: "DJI", Class: Other, Models: []string{
		"Mavic 3 Pro", "Mavic 3", "Air 3", "Air 2S", "Mini 3 Pro", "Mini 3", "Mini 2", "Osmo Action 3", "Osmo Action 2",
	}},
}

var builtinSoftware = []string{
	"iOS 17.2", "iOS 17.1", "iOS 17.0", "iOS 16.7", "iOS 16.6", "iOS 16.5", "iOS 16.4", "iOS 16.3", "iOS 16.2", "iOS 16.1", "iOS 16.0",
	"iOS 15.7", "iOS 15.6", "iOS 15.5", "iOS 15.4", "iOS 15.3", "iOS 15.2", "iOS 15.1", "iOS 15.0",
	"Android 14", "Android 13", "Android 12L", "Android 12", "Android 11", "Android 10",
	"HarmonyOS 4.0", "HarmonyOS 3.1", "HarmonyOS 3.0", "HarmonyOS 2.0",
	"One UI 6.0", "One UI 5.1", "One UI 5.0", "One UI 4.1", "One UI 4.0", "One UI 3.1",
	"MIUI 14", "MIUI 13", "MIUI 12.5", "MIUI 12", "MIUI 11",
	"ColorOS 14", "ColorOS 13", "ColorOS 12", "ColorOS 11",
	"OxygenOS 14", "OxygenOS 13", "OxygenOS 12", "OxygenOS 11",
	"Funtouch OS 14", "Funtouch OS 13", "Funtouch OS 12", "Funtouch OS 11",
	"Realme UI 5.0", "Realme UI 4.0", "Realme UI 3.0", "Realme UI 2.0",
	"MagicOS 8.0", "MagicOS 7.0", "MagicOS 6.0",
	"Origin OS 3", "Origin OS 2", "Origin OS",
	"Flyme 10", "Flyme 9", "Flyme 8",
	"Adobe Photoshop 2024", "Adobe Photoshop 2023", "Adobe Photoshop 2022", "Adobe Photoshop 2021",
	"Adobe Lightroom Classic 12.5", "Adobe Lightroom Classic 12.0", "Adobe Lightroom Classic 11.0",
	"Adobe Lightroom 7.5", "Adobe Lightroom 7.0", "Adobe Lightroom 6.0",
	"Capture One 23", "Capture One 22", "Capture One 21",
	"DxO PhotoLab 7", "DxO PhotoLab 6", "DxO PhotoLab 5",
	"Luminar AI", "Luminar Neo", "Affinity Photo 2", "Affinity Photo",
	"Canon Digital Photo Professional 4", "Nikon NX Studio", "Sony Imaging Edge",
}

var mobileLenses = []string{
	"Wide camera", "Ultra Wide camera", "Telephoto camera", "Front camera", "Main camera", "Selfie camera",
}

var builtinLenses = []string{
	"Wide camera", "Ultra Wide camera", "Telephoto camera", "Periscope Telephoto camera",
	"Front camera", "Dual lens camera", "Main camera", "Selfie camera", "Macro camera", "Portrait camera",
	"Canon EF 24-70mm f/2.8L II USM", "Canon EF 70-200mm f/2.8L IS III USM", "Canon RF 24-70mm F2.8 L IS USM",
	"Canon RF 50mm F1.2 L USM", "Canon RF 70-200mm F2.8 L IS USM", "Canon RF 100-500mm F4.5-7.1 L IS USM",
	"Nikon AF-S 24-70mm f/2.8E ED VR", "Nikon AF-S 70-200mm f/2.8E FL ED VR", "Nikon Z 24-70mm f/2.8 S",
	"Nikon Z 50mm f/1.8 S", "Nikon Z 70-200mm f/2.8 VR S", "Nikon Z 100-400mm f/4.5-5.6 VR S",
	"Sony FE 24-70mm F2.8 GM II", "Sony FE 70-200mm F2.8 GM OSS II", "Sony FE 16-35mm F2.8 GM",
	"Sony FE 50mm F1.2 GM", "Sony FE 100-400mm F4.5-5.6 GM OSS", "Sony FE 200-600mm F5.6-6.3 G OSS",
	"Fujifilm XF 16-55mm F2.8 R LM WR", "Panasonic Lumix S 24-105mm F4 Macro O.I.S.",
	"Olympus M.Zuiko 12-40mm F2.8 PRO", "Pentax HD FA 24-70mm F2.8", "Leica Summilux-M 35mm f/1.4 ASPH.",
	"ZEISS Otus 55mm f/1.4", "ZEISS Otus 85mm f/1.4", "ZEISS Batis 25mm f/2",
	"Sigma 35mm F1.4 DG HSM Art", "Sigma 85mm F1.4 DG HSM Art", "Sigma 24-70mm F2.8 DG DN Art",
	"Tamron 28-75mm F/2.8 Di III VXD G2", "Tamron 70-180mm F/2.8 Di III VXD", "Tamron 17-28mm F/2.8 Di III RXD",
}

var (
	exposureTimes = []string{"1/15", "1/30", "1/60", "1/120", "1/240", "1/480", "1/960", "1/1000"}
	fNumbers      = []string{"1.6", "1.8", "2.0", "2.2", "2.4", "2.8", "4.0"}
	isoSpeeds     = []string{"32", "64", "100", "200", "400", "800", "1600", "3200"}
	focalLengths  = []string{"3.5mm", "4.2mm", "5.7mm", "6.0mm", "7.5mm", "9.0mm", "10.8mm"}
)

// wire value -> zh label, in catalog order
type vocabulary []struct{ wire, zh string }

var fixedDomains = map[metadata.Field]vocabulary{
	metadata.WhiteBalance: {
		{"Auto", "自动"}, {"Manual", "手动"}, {"Daylight", "日光"},
		{"Cloudy", "阴天"}, {"Tungsten", "钨丝灯"}, {"Fluorescent", "荧光灯"},
	},
	metadata.Flash: {
		{"No Flash", "无闪光灯"}, {"Flash Fired", "闪光灯已触发"}, {"Flash Not Fired", "闪光灯未触发"},
		{"Auto Flash", "自动闪光灯"}, {"Red-eye Reduction", "红眼减轻"},
	},
	metadata.Orientation: {
		{"Horizontal (normal)", "水平（正常）"}, {"Mirror horizontal", "水平镜像"},
		{"Rotate 180", "旋转180度"}, {"Mirror vertical", "垂直镜像"},
		{"Mirror horizontal and rotate 270 CW", "水平镜像并逆时针旋转270度"}, {"Rotate 90 CW", "顺时针旋转90度"},
		{"Mirror horizontal and rotate 90 CW", "水平镜像并逆时针旋转90度"}, {"Rotate 270 CW", "逆时针旋转270度"},
	},
	metadata.GPSLatitudeRef:  {{"N", "北纬"}, {"S", "南纬"}},
	metadata.GPSLongitudeRef: {{"E", "东经"}, {"W", "西经"}},
	metadata.GPSAltitudeRef:  {{"Above Sea Level", "海平面以上"}, {"Below Sea Level", "海平面以下"}},
}

// english spellings accepted for the single-letter references
var refAliases = map[string]string{
	"north": "N", "south": "S", "east": "E", "west": "W",
}

var phrasebooks = map[Locale]Phrasebook{
	LocaleEN: {
		Creator:     "Photographer %d",
		Copyright:   "(C)%d Photographer, All rights reserved",
		Description: "Photo taken with %s %s",
		Title:       "IMG_%d",
		Location:    "Location %d",
		KeywordSep:  ", ",
		Topics:      []string{"nature", "portrait", "landscape", "city", "travel", "people", "food", "architecture"},
	},
	LocaleZH: {
		Creator:     "摄影师%d",
		Copyright:   "(C)%d 摄影师, 保留所有权利",
		Description: "使用%s %s拍摄的照片",
		Title:       "IMG_%d",
		Location:    "地点%d",
		KeywordSep:  ", ",
		Topics:      []string{"自然", "人像", "风景", "城市", "旅行", "人物", "美食", "建筑"},
	},
}
