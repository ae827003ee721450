package station

// District describes an administrative district of the monitoring network.
type District struct {
	Name        string
	Code        string
	Region      string
	CenterLat   float64
	CenterLon   float64
	Labs        []string
	Rivers      []string
	WaterBodies []string
}

// Districts lists the 36 districts of the Maharashtra network.
var Districts = []District{
	{
		Name:        "Pune",
		Code:        "PUN",
		Region:      "Pune Division",
		CenterLat:   18.5204,
		CenterLon:   73.8567,
		Labs:        []string{"State Lab Pune (Under construction)", "Regional/District Lab Pune", "SDL Wadgaon Mawal", "SDL Baramati", "SDL Bhor", "SDL Manchar", "SDL Indapur", "SDL Daund"},
		Rivers:      []string{"Mula", "Mutha", "Bhima"},
		WaterBodies: []string{"Khadakwasla Dam", "Pavana Dam", "Temghar Dam"},
	},
	{
		Name:        "Satara",
		Code:        "SAT",
		Region:      "Pune Division",
		CenterLat:   17.6805,
		CenterLon:   73.9999,
		Labs:        []string{"District Lab Satara", "SDL Karad", "SDL Khandala", "SDL Somardi", "SDL Dahiwadi"},
		Rivers:      []string{"Krishna", "Koyna", "Venna"},
		WaterBodies: []string{"Koyna Dam", "Dhom Dam", "Kanher Dam"},
	},
	{
		Name:        "Sangli",
		Code:        "SAN",
		Region:      "Pune Division",
		CenterLat:   16.8524,
		CenterLon:   74.5815,
		Labs:        []string{"District Lab Sangli", "SDL Atapadi", "SDL Jath", "SDL Kavathe Mahakal", "SDL Islampur"},
		Rivers:      []string{"Krishna", "Warna"},
		WaterBodies: []string{"Krishna River", "Warna River"},
	},
	{
		Name:        "Solapur",
		Code:        "SOL",
		Region:      "Pune Division",
		CenterLat:   17.6599,
		CenterLon:   75.9064,
		Labs:        []string{"District Lab Solapur", "SDL Akluj", "SDL Akkalkot", "SDL Barshi", "SDL Karmala", "SDL Kurduwadi", "SDL Pandharpur", "SDL Sangola"},
		Rivers:      []string{"Bhima", "Sina"},
		WaterBodies: []string{"Ujjani Dam", "Bhima River"},
	},
	{
		Name:        "Kolhapur",
		Code:        "KOL",
		Region:      "Pune Division",
		CenterLat:   16.705,
		CenterLon:   74.2433,
		Labs:        []string{"District Lab Kolhapur", "SDL Gadhinglaj", "SDL Kodoli", "SDL Shirol", "SDL Solankur"},
		Rivers:      []string{"Panchganga", "Krishna"},
		WaterBodies: []string{"Panchganga River", "Radhanagari Dam"},
	},
	{
		Name:        "Mumbai",
		Code:        "MUM",
		Region:      "Konkan Division",
		CenterLat:   19.076,
		CenterLon:   72.8777,
		Labs:        []string{"MPCB Regional Lab Mumbai"},
		Rivers:      []string{"Mithi"},
		WaterBodies: []string{"Powai Lake", "Vihar Lake", "Tulsi Lake", "Arabian Sea Coastal"},
	},
	{
		Name:        "Mumbai Suburban",
		Code:        "MSUB",
		Region:      "Konkan Division",
		CenterLat:   19.1895,
		CenterLon:   72.9726,
		Labs:        []string{"MPCB Regional Lab Mumbai"},
		Rivers:      []string{"Mithi", "Dahisar"},
		WaterBodies: []string{"Powai Lake", "Sanjay Gandhi National Park Lakes"},
	},
	{
		Name:        "Thane",
		Code:        "THA",
		Region:      "Konkan Division",
		CenterLat:   19.2183,
		CenterLon:   72.9781,
		Labs:        []string{"Regional/District Lab Thane", "SDL Shahapur", "SDL Goveli"},
		Rivers:      []string{"Ulhas", "Vaitarna"},
		WaterBodies: []string{"Tansa Lake", "Bhatsa Dam", "Ulhas River"},
	},
	{
		Name:        "Palghar",
		Code:        "PAL",
		Region:      "Konkan Division",
		CenterLat:   19.6966,
		CenterLon:   72.7662,
		Labs:        []string{"District Lab Palghar", "SDL Dahanu", "SDL Jawhar", "SDL Kasa", "SDL Wada"},
		Rivers:      []string{"Vaitarna", "Surya"},
		WaterBodies: []string{"Vaitarna Dam", "Surya River"},
	},
	{
		Name:        "Raigad",
		Code:        "RAI",
		Region:      "Konkan Division",
		CenterLat:   18.5184,
		CenterLon:   73.0183,
		Labs:        []string{"District Lab Raigad", "SDL Karjat", "SDL Mangaon", "SDL Pen", "SDL Roha", "SDL Mahad"},
		Rivers:      []string{"Patalganga", "Amba", "Savitri"},
		WaterBodies: []string{"Patalganga River", "Arabian Sea Coastal"},
	},
	{
		Name:        "Ratnagiri",
		Code:        "RTN",
		Region:      "Konkan Division",
		CenterLat:   17.0,
		CenterLon:   73.3,
		Labs:        []string{"District Lab Ratnagiri", "SDL Mandangad", "SDL Dapoli", "SDL Kamthe", "SDL Lanja"},
		Rivers:      []string{"Kajali", "Shastri"},
		WaterBodies: []string{"Arabian Sea Coastal", "Kajali River"},
	},
	{
		Name:        "Sindhudurg",
		Code:        "SIN",
		Region:      "Konkan Division",
		CenterLat:   16.0,
		CenterLon:   73.7,
		Labs:        []string{"District Lab Sindhudurg", "SDL Kankavali", "SDL Malvan", "SDL Sawantwadi"},
		Rivers:      []string{"Terekhol"},
		WaterBodies: []string{"Arabian Sea Coastal"},
	},
	{
		Name:        "Nashik",
		Code:        "NAS",
		Region:      "Nashik Division",
		CenterLat:   20.0,
		CenterLon:   73.7898,
		Labs:        []string{"Regional/District Lab Nashik", "SDL Kalwan", "SDL Chandwad", "SDL Malegaon", "SDL Surgana", "SDL Niphad", "SDL Ghoti"},
		Rivers:      []string{"Godavari", "Vaitarna", "Darna"},
		WaterBodies: []string{"Gangapur Dam", "Godavari River"},
	},
	{
		Name:        "Dhule",
		Code:        "DHU",
		Region:      "Nashik Division",
		CenterLat:   20.9042,
		CenterLon:   74.7749,
		Labs:        []string{"District Lab Dhule", "SDL Dondaicha", "SDL Shirpur"},
		Rivers:      []string{"Tapi", "Panzara"},
		WaterBodies: []string{"Panzara River", "Tapi River"},
	},
	{
		Name:        "Nandurbar",
		Code:        "NDB",
		Region:      "Nashik Division",
		CenterLat:   21.3667,
		CenterLon:   74.2333,
		Labs:        []string{"District Lab Nandurbar", "SDL Akkalkuwa", "SDL Dhadgaon", "SDL Navapur", "SDL Taloda"},
		Rivers:      []string{"Tapi", "Narmada"},
		WaterBodies: []string{"Tapi River", "Narmada River"},
	},
	{
		Name:        "Jalgaon",
		Code:        "JAL",
		Region:      "Nashik Division",
		CenterLat:   20.9977,
		CenterLon:   75.5626,
		Labs:        []string{"District Lab Jalgaon", "SDL Parola", "SDL Muktainagar", "SDL Pachora", "SDL Chopda", "SDL Jamner"},
		Rivers:      []string{"Tapi", "Purna"},
		WaterBodies: []string{"Tapi River", "Girna Dam"},
	},
	{
		Name:        "Ahmednagar",
		Code:        "AHM",
		Region:      "Nashik Division",
		CenterLat:   19.0948,
		CenterLon:   74.748,
		Labs:        []string{"District Lab Ahmednagar", "SDL Sangamner", "SDL Rahata", "SDL Karjat", "SDL Pathardi", "SDL Shrirampur"},
		Rivers:      []string{"Pravara", "Sina", "Mula"},
		WaterBodies: []string{"Pravara River", "Mula Dam"},
	},
	{
		Name:        "Chhatrapati Sambhajinagar",
		Code:        "CSBN",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   19.8762,
		CenterLon:   75.3433,
		Labs:        []string{"Regional/District Lab Chhatrapati Sambhajinagar", "SDL Gangapur", "SDL Pachod", "SDL Vaijapur", "SDL Sillod"},
		Rivers:      []string{"Godavari", "Kham"},
		WaterBodies: []string{"Jayakwadi Dam", "Godavari River"},
	},
	{
		Name:        "Beed",
		Code:        "BED",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   18.9894,
		CenterLon:   75.7589,
		Labs:        []string{"District Lab Beed", "SDL Patoda", "SDL Parli", "SDL Majalgaon", "SDL Georai"},
		Rivers:      []string{"Manjra", "Bendsura"},
		WaterBodies: []string{"Manjra River", "Bendsura River"},
	},
	{
		Name:        "Latur",
		Code:        "LAT",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   18.3996,
		CenterLon:   76.5598,
		Labs:        []string{"District Lab Latur", "SDL Udgir", "SDL Nilanga", "SDL Ahmadpur", "SDL Ausa"},
		Rivers:      []string{"Manjra"},
		WaterBodies: []string{"Manjra River"},
	},
	{
		Name:        "Jalna",
		Code:        "JLN",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   19.8412,
		CenterLon:   75.8848,
		Labs:        []string{"District Lab Jalna", "SDL Ambad", "SDL Mantha", "SDL Jafrabad"},
		Rivers:      []string{"Purna"},
		WaterBodies: []string{"Purna River"},
	},
	{
		Name:        "Osmanabad",
		Code:        "OSM",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   18.176,
		CenterLon:   76.0399,
		Labs:        []string{"District Lab Osmanabad", "SDL Omerga", "SDL Paranda", "SDL Washi"},
		Rivers:      []string{"Terna", "Bori"},
		WaterBodies: []string{"Terna River"},
	},
	{
		Name:        "Parbhani",
		Code:        "PAR",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   19.2608,
		CenterLon:   76.7791,
		Labs:        []string{"District Lab Parbhani", "SDL Selu", "SDL Bori", "SDL Gangakhed", "SDL Pathri"},
		Rivers:      []string{"Purna", "Dudhna"},
		WaterBodies: []string{"Purna River"},
	},
	{
		Name:        "Hingoli",
		Code:        "HIN",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   19.7167,
		CenterLon:   77.15,
		Labs:        []string{"District Lab Hingoli", "SDL Wasmat", "SDL Kalamnuri", "SDL Sengaon"},
		Rivers:      []string{"Penganga", "Purna"},
		WaterBodies: []string{"Penganga River"},
	},
	{
		Name:        "Nanded",
		Code:        "NAN",
		Region:      "Chhatrapati Sambhajinagar Division",
		CenterLat:   19.1383,
		CenterLon:   77.321,
		Labs:        []string{"District Lab Nanded", "SDL Degloor", "SDL Gokunda", "SDL Hadgaon", "SDL Kandar", "SDL Mukhed", "SDL Umri"},
		Rivers:      []string{"Godavari", "Penganga"},
		WaterBodies: []string{"Godavari River", "Vishnupuri Dam"},
	},
	{
		Name:        "Amravati",
		Code:        "AMR",
		Region:      "Amravati Division",
		CenterLat:   20.9374,
		CenterLon:   77.7796,
		Labs:        []string{"Regional/District Lab Amravati", "SDL Achalpur", "SDL Daryapur", "SDL Dharni", "SDL Morshi", "SDL Nandgaon Kh."},
		Rivers:      []string{"Purna", "Chandrabhaga"},
		WaterBodies: []string{"Purna River", "Upper Wardha Dam"},
	},
	{
		Name:        "Akola",
		Code:        "AKL",
		Region:      "Amravati Division",
		CenterLat:   20.7002,
		CenterLon:   77.0082,
		Labs:        []string{"District Lab Akola", "SDL Barshitakli", "SDL Murtijapur", "SDL Telhara"},
		Rivers:      []string{"Purna", "Morna"},
		WaterBodies: []string{"Purna River", "Katepurna Reservoir"},
	},
	{
		Name:        "Buldhana",
		Code:        "BUL",
		Region:      "Amravati Division",
		CenterLat:   20.5307,
		CenterLon:   76.1836,
		Labs:        []string{"District Lab Buldhana", "SDL Deulgaon Raja", "SDL Jalgaon Jamod", "SDL Khamgaon", "SDL Malkapur", "SDL Shegaon"},
		Rivers:      []string{"Purna", "Penganga"},
		WaterBodies: []string{"Purna River", "Penganga River"},
	},
	{
		Name:        "Washim",
		Code:        "WAS",
		Region:      "Amravati Division",
		CenterLat:   20.1093,
		CenterLon:   77.1391,
		Labs:        []string{"District Lab Washim", "SDL Malegaon", "SDL Manora"},
		Rivers:      []string{"Penganga", "Arunavati"},
		WaterBodies: []string{"Penganga River"},
	},
	{
		Name:        "Yavatmal",
		Code:        "YAV",
		Region:      "Amravati Division",
		CenterLat:   20.3984,
		CenterLon:   78.1308,
		Labs:        []string{"District Lab Yavatmal", "SDL Darwha", "SDL Pusad", "SDL Umarkhed", "SDL Ralegaon", "SDL Pandharkawada", "SDL Wani"},
		Rivers:      []string{"Penganga", "Wardha"},
		WaterBodies: []string{"Penganga River", "Upper Wardha Dam"},
	},
	{
		Name:        "Nagpur",
		Code:        "NAG",
		Region:      "Nagpur Division",
		CenterLat:   21.1458,
		CenterLon:   79.0882,
		Labs:        []string{"Regional/District Lab Nagpur", "SDL Ramtek", "SDL Narkhed", "SDL Parsioni", "SDL Hingna"},
		Rivers:      []string{"Nag", "Pench", "Kanhan"},
		WaterBodies: []string{"Ambazari Lake", "Nag River", "Pench River"},
	},
	{
		Name:        "Wardha",
		Code:        "WAR",
		Region:      "Nagpur Division",
		CenterLat:   20.7453,
		CenterLon:   78.5976,
		Labs:        []string{"District Lab Wardha", "SDL Pulgaon", "SDL Arvi", "SDL Samudrapur"},
		Rivers:      []string{"Wardha", "Dham"},
		WaterBodies: []string{"Wardha River"},
	},
	{
		Name:        "Bhandara",
		Code:        "BHA",
		Region:      "Nagpur Division",
		CenterLat:   21.1704,
		CenterLon:   79.6497,
		Labs:        []string{"District Lab Bhandara", "SDL Tumsar", "SDL Mohadi", "SDL Pauni", "SDL Lakhandur"},
		Rivers:      []string{"Wainganga", "Bagh"},
		WaterBodies: []string{"Wainganga River", "Gosikhurd Dam"},
	},
	{
		Name:        "Chandrapur",
		Code:        "CHA",
		Region:      "Nagpur Division",
		CenterLat:   19.9615,
		CenterLon:   79.2961,
		Labs:        []string{"District Lab Chandrapur", "SDL Rajura", "SDL Bramhapuri", "SDL Gondpipari", "SDL Sindewahi", "SDL Saoli", "SDL Warora"},
		Rivers:      []string{"Wardha", "Wainganga", "Erai"},
		WaterBodies: []string{"Wardha River", "Erai Dam"},
	},
	{
		Name:        "Gadchiroli",
		Code:        "GAD",
		Region:      "Nagpur Division",
		CenterLat:   20.1809,
		CenterLon:   80.0,
		Labs:        []string{"District Lab Gadchiroli", "SDL Aheri", "SDL Armori", "SDL Chamorshi", "SDL Kurkheda"},
		Rivers:      []string{"Wainganga", "Pranhita"},
		WaterBodies: []string{"Wainganga River", "Pranhita River"},
	},
	{
		Name:        "Gondia",
		Code:        "GON",
		Region:      "Nagpur Division",
		CenterLat:   21.456,
		CenterLon:   80.1923,
		Labs:        []string{"District Lab Gondia", "SDL Goreagon", "SDL Deori", "SDL Sadak/Arjuni", "SDL Tiroda", "SDL Navegaon", "SDL Amgaon"},
		Rivers:      []string{"Wainganga", "Kathani"},
		WaterBodies: []string{"Wainganga River", "Navegaon Lake"},
	},
}
