package taxonomy

// Default returns the built-in storefront taxonomy. A JSON file loaded at
// startup can replace it, this is only the fallback the binaries ship with.
func Default() *Registry {
	return NewRegistry(defaultCategories(), defaultSpecs())
}

func defaultCategories() []Category {
	return []Category{
		{
			Id:    "1",
			Label: "Informática",
			Value: "informatica",
			Subcategories: []Subcategory{
				{Id: "101", Label: "Notebooks", Value: "notebooks"},
				{Id: "102", Label: "Computadoras Ensambladas", Value: "computadoras_ensambladas"},
				{Id: "103", Label: "Placas Madre", Value: "placas_madre"},
				{Id: "104", Label: "Procesador", Value: "procesador"},
				{Id: "105", Label: "Memorias RAM", Value: "memorias_ram"},
				{Id: "106", Label: "Discos Duros", Value: "discos_duros"},
				{Id: "107", Label: "Tarjeta Gráfica", Value: "tarjeta_grafica"},
				{Id: "108", Label: "Gabinetes", Value: "gabinetes"},
				{Id: "109", Label: "Fuentes de Alimentación", Value: "fuentes_alimentacion"},
			},
		},
		{
			Id:    "2",
			Label: "Periféricos",
			Value: "perifericos",
			Subcategories: []Subcategory{
				{Id: "201", Label: "Monitores", Value: "monitores"},
				{Id: "202", Label: "Teclados", Value: "teclados"},
				{Id: "203", Label: "Mouses", Value: "mouses"},
				{Id: "204", Label: "Auriculares", Value: "auriculares"},
				{Id: "205", Label: "Micrófonos", Value: "microfonos"},
			},
		},
		{
			Id:    "3",
			Label: "CCTV",
			Value: "cctv",
			Subcategories: []Subcategory{
				{Id: "301", Label: "Cámaras de Seguridad", Value: "camaras_seguridad"},
				{Id: "302", Label: "DVR", Value: "dvr"},
				{Id: "303", Label: "NAS", Value: "nas"},
			},
		},
		{
			Id:    "4",
			Label: "Impresoras",
			Value: "impresoras",
			Subcategories: []Subcategory{
				{Id: "401", Label: "Impresoras Láser", Value: "impresoras_laser"},
				{Id: "402", Label: "Impresoras Multifunción", Value: "impresoras_multifuncion"},
			},
		},
		{
			Id:    "5",
			Label: "Energía",
			Value: "energia",
			Subcategories: []Subcategory{
				{Id: "501", Label: "UPS", Value: "ups"},
				{Id: "502", Label: "Estabilizadores", Value: "estabilizadores"},
			},
		},
	}
}

func defaultSpecs() map[string][]SpecField {
	return map[string][]SpecField{
		"notebooks": {
			{Name: "processor", DisplayLabel: "Procesador"},
			{Name: "memory", DisplayLabel: "Memoria RAM"},
			{Name: "storage", DisplayLabel: "Almacenamiento"},
			{Name: "disk", DisplayLabel: "Disco"},
			{Name: "graphicsCard", DisplayLabel: "Tarjeta Gráfica"},
			{Name: "notebookScreen", DisplayLabel: "Pantalla"},
			{Name: "notebookBattery", DisplayLabel: "Batería"},
		},
		"computadoras_ensambladas": {
			{Name: "processor", DisplayLabel: "Procesador"},
			{Name: "memory", DisplayLabel: "Memoria RAM"},
			{Name: "storage", DisplayLabel: "Almacenamiento"},
			{Name: "graphicsCard", DisplayLabel: "Tarjeta Gráfica"},
			{Name: "pcCase", DisplayLabel: "Gabinete"},
			{Name: "pcPowerSupply", DisplayLabel: "Fuente"},
		},
		"placas_madre": {
			{Name: "motherboardSocket", DisplayLabel: "Socket"},
			{Name: "motherboardChipset", DisplayLabel: "Chipset"},
			{Name: "motherboardFormFactor", DisplayLabel: "Formato"},
			{Name: "motherboardRamType", DisplayLabel: "Tipo de RAM"},
		},
		"procesador": {
			{Name: "processorSocket", DisplayLabel: "Socket"},
			{Name: "processorCores", DisplayLabel: "Núcleos"},
			{Name: "processorThreads", DisplayLabel: "Hilos"},
			{Name: "processorBaseFrequency", DisplayLabel: "Frecuencia Base"},
			{Name: "processorIntegratedGraphics", DisplayLabel: "Gráficos Integrados"},
		},
		"memorias_ram": {
			{Name: "ramType", DisplayLabel: "Tipo"},
			{Name: "ramSpeed", DisplayLabel: "Velocidad"},
			{Name: "ramCapacity", DisplayLabel: "Capacidad"},
		},
		"discos_duros": {
			{Name: "hddCapacity", DisplayLabel: "Capacidad"},
			{Name: "diskType", DisplayLabel: "Tipo"},
			{Name: "hddInterface", DisplayLabel: "Interfaz"},
		},
		"tarjeta_grafica": {
			{Name: "graphicCardModel", DisplayLabel: "Modelo"},
			{Name: "graphicCardMemory", DisplayLabel: "Memoria"},
			{Name: "graphicfabricate", DisplayLabel: "Fabricante"},
		},
		"fuentes_alimentacion": {
			{Name: "psuWattage", DisplayLabel: "Potencia"},
			{Name: "psuCertification", DisplayLabel: "Certificación"},
		},
		"monitores": {
			{Name: "monitorSize", DisplayLabel: "Tamaño"},
			{Name: "monitorResolution", DisplayLabel: "Resolución"},
			{Name: "monitorRefreshRate", DisplayLabel: "Tasa de Refresco"},
			{Name: "monitorPanel", DisplayLabel: "Panel"},
		},
		"teclados": {
			{Name: "keyboardInterface", DisplayLabel: "Interfaz"},
			{Name: "keyboardLayout", DisplayLabel: "Layout"},
			{Name: "keyboardBacklight", DisplayLabel: "Retroiluminación"},
		},
		"mouses": {
			{Name: "mouseInterface", DisplayLabel: "Interfaz"},
			{Name: "mouseDpi", DisplayLabel: "DPI"},
		},
		"auriculares": {
			{Name: "headphoneConnection", DisplayLabel: "Conexión"},
			{Name: "headphoneNoiseCancel", DisplayLabel: "Cancelación de Ruido"},
		},
		"microfonos": {
			{Name: "microphoneType", DisplayLabel: "Tipo"},
			{Name: "microphonePolarPattern", DisplayLabel: "Patrón Polar"},
		},
		"camaras_seguridad": {
			{Name: "cameraResolution", DisplayLabel: "Resolución"},
			{Name: "cameraType", DisplayLabel: "Tipo"},
			{Name: "cameraConnectivity", DisplayLabel: "Conectividad"},
		},
		"dvr": {
			{Name: "dvrChannels", DisplayLabel: "Canales"},
			{Name: "dvrStorageCapacity", DisplayLabel: "Capacidad"},
		},
		"nas": {
			{Name: "nasBays", DisplayLabel: "Bahías"},
			{Name: "nasCapacity", DisplayLabel: "Capacidad"},
		},
		"impresoras_laser": {
			{Name: "printerType", DisplayLabel: "Tipo"},
			{Name: "printerColor", DisplayLabel: "Color"},
			{Name: "printerConnectivity", DisplayLabel: "Conectividad"},
		},
		"impresoras_multifuncion": {
			{Name: "printerFunctions", DisplayLabel: "Funciones"},
			{Name: "printerColor", DisplayLabel: "Color"},
			{Name: "printerConnectivity", DisplayLabel: "Conectividad"},
		},
		"ups": {
			{Name: "upsCapacity", DisplayLabel: "Capacidad"},
			{Name: "upsOutlets", DisplayLabel: "Tomas"},
			{Name: "upsType", DisplayLabel: "Tipo"},
		},
	}
}
